package minfraud

import (
	"testing"
)

func TestFieldMapCoversSchema(t *testing.T) {
	seen := make(map[string]Attribute)
	for _, attr := range attributeOrder {
		spec := attributeSchema[attr]
		name, ok := fieldMap[attr]
		if !spec.sent {
			if ok {
				t.Errorf("%s is never sent but has wire name %q", attr, name)
			}
			continue
		}
		if !ok {
			t.Errorf("%s has no wire name", attr)
			continue
		}
		if prev, dup := seen[name]; dup {
			t.Errorf("wire name %q used by both %s and %s", name, prev, attr)
		}
		seen[name] = attr
	}
	if len(fieldMap) != len(seen) {
		t.Errorf("field map has %d entries, schema sends %d attributes", len(fieldMap), len(seen))
	}
	if len(attributeOrder) != len(attributeSchema) {
		t.Errorf("attribute order lists %d attributes, schema has %d", len(attributeOrder), len(attributeSchema))
	}
}

func TestEncodeQuery(t *testing.T) {
	txn, err := NewTransaction(func(b *TransactionBuilder) {
		b.Set(IP, "1").
			Set(City, "2").
			Set(State, "3").
			Set(Postal, "4").
			Set(Country, "5").
			Set(TxnID, "6").
			Set(LicenseKey, "7")
	})
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}

	q := EncodeQuery(txn)
	expected := map[string]string{
		"i":           "1",
		"city":        "2",
		"region":      "3",
		"postal":      "4",
		"country":     "5",
		"txnID":       "6",
		"license_key": "7",
	}
	for name, want := range expected {
		if got := q.Get(name); got != want {
			t.Errorf("%s: expected %q, got %q", name, want, got)
		}
	}
	if len(q) != len(expected) {
		t.Errorf("expected %d parameters, got %d: %v", len(expected), len(q), q)
	}
}

func TestEncodeFieldsDerived(t *testing.T) {
	txn, err := NewTransaction(func(b *TransactionBuilder) {
		requiredOnly(b)
		b.Set(Email, "hughjass@example.com").
			Set(ShipState, "QC").
			Set(Phone, "555-1234")
	})
	if err != nil {
		t.Fatalf("NewTransaction failed: %v", err)
	}

	fields := EncodeFields(txn)
	if fields["domain"] != "example.com" {
		t.Errorf("expected domain example.com, got %q", fields["domain"])
	}
	if fields["emailMD5"] != "01ddb59d9bc1d1bfb3eb99a22578ce33" {
		t.Errorf("unexpected emailMD5 %q", fields["emailMD5"])
	}
	if fields["shipRegion"] != "QC" {
		t.Errorf("expected shipRegion QC, got %q", fields["shipRegion"])
	}
	if fields["custPhone"] != "555-1234" {
		t.Errorf("expected custPhone, got %q", fields["custPhone"])
	}
	if _, ok := fields["email"]; ok {
		t.Error("raw email must not be sent")
	}
}

func TestEncodeFieldsPanicsOnDrift(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for attribute without wire name")
		}
	}()
	EncodeFields(&Transaction{attrs: map[Attribute]string{Email: "x@example.com"}})
}

func TestParseAttribute(t *testing.T) {
	if attr, ok := ParseAttribute("ship_state"); !ok || attr != ShipState {
		t.Errorf("expected ship_state, got %q (%v)", attr, ok)
	}
	if _, ok := ParseAttribute("favourite_colour"); ok {
		t.Error("expected unknown attribute")
	}
	if name, ok := WireName(ShipState); !ok || name != "shipRegion" {
		t.Errorf("expected shipRegion, got %q", name)
	}
	if _, ok := WireName(Email); ok {
		t.Error("email has no wire name")
	}
}

package minfraud

import (
	"fmt"
	"net/url"
)

// fieldMap maps every sent attribute to its minFraud wire name.
var fieldMap = map[Attribute]string{
	IP:             "i",
	City:           "city",
	State:          "region",
	Postal:         "postal",
	Country:        "country",
	LicenseKey:     "license_key",
	ShipAddr:       "shipAddr",
	ShipCity:       "shipCity",
	ShipState:      "shipRegion",
	ShipPostal:     "shipPostal",
	ShipCountry:    "shipCountry",
	EmailDomain:    "domain",
	EmailMD5:       "emailMD5",
	Phone:          "custPhone",
	BIN:            "bin",
	SessionID:      "sessionID",
	UserAgent:      "user_agent",
	AcceptLanguage: "accept_language",
	TxnID:          "txnID",
	Amount:         "order_amount",
	Currency:       "order_currency",
	TxnType:        "txn_type",
	AVSResult:      "avs_result",
	CVVResult:      "cvv_result",
	RequestedType:  "requested_type",
	ForwardedIP:    "forwardedIP",
	ShopID:         "shopID",
}

// WireName returns the minFraud query parameter name of attr.
func WireName(attr Attribute) (string, bool) {
	name, ok := fieldMap[attr]
	return name, ok
}

// EncodeFields projects the transaction's attributes onto wire names.
//
// It panics if an attribute has no wire name; that means the schema and the
// field map have drifted apart.
func EncodeFields(t *Transaction) map[string]string {
	out := make(map[string]string, len(t.attrs))
	for attr, v := range t.attrs {
		name, ok := fieldMap[attr]
		if !ok {
			panic(fmt.Sprintf("minfraud: attribute %q has no wire name", string(attr)))
		}
		out[name] = v
	}
	return out
}

// EncodeQuery returns the transaction as query parameters.
func EncodeQuery(t *Transaction) url.Values {
	q := make(url.Values, len(t.attrs))
	for name, v := range EncodeFields(t) {
		q.Set(name, v)
	}
	return q
}

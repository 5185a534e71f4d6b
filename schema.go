package minfraud

// Attribute is the internal name of a transaction attribute.
type Attribute string

// Required attributes.
const (
	IP         Attribute = "ip"
	TxnID      Attribute = "txn_id"
	LicenseKey Attribute = "license_key"
)

// Billing address attributes.
const (
	City    Attribute = "city"
	State   Attribute = "state"
	Postal  Attribute = "postal"
	Country Attribute = "country"
)

// Shipping address attributes.
const (
	ShipAddr    Attribute = "ship_addr"
	ShipCity    Attribute = "ship_city"
	ShipState   Attribute = "ship_state"
	ShipPostal  Attribute = "ship_postal"
	ShipCountry Attribute = "ship_country"
)

// User attributes. Email is never sent as-is; EmailDomain and EmailMD5 are
// derived from it.
const (
	Email       Attribute = "email"
	EmailDomain Attribute = "email_domain"
	EmailMD5    Attribute = "email_md5"
	Phone       Attribute = "phone"
)

// Card, linking, order, card result and miscellaneous attributes.
const (
	BIN            Attribute = "bin"
	SessionID      Attribute = "session_id"
	UserAgent      Attribute = "user_agent"
	AcceptLanguage Attribute = "accept_language"
	ForwardedIP    Attribute = "forwarded_ip"
	Amount         Attribute = "amount"
	Currency       Attribute = "currency"
	TxnType        Attribute = "txn_type"
	ShopID         Attribute = "shop_id"
	AVSResult      Attribute = "avs_result"
	CVVResult      Attribute = "cvv_result"
	RequestedType  Attribute = "requested_type"
)

type attributeKind int

const (
	kindString attributeKind = iota
	kindNumeric
	// kindStringified attributes accept any value and are sent as its text form.
	kindStringified
	// kindDerived attributes are computed from other attributes and cannot be set.
	kindDerived
)

type attributeSpec struct {
	kind     attributeKind
	required bool
	// sent is false for attributes that are only used to derive others.
	sent     bool
}

// attributeSchema describes every attribute a caller may set or the
// transaction may derive.
var attributeSchema = map[Attribute]attributeSpec{
	IP:         {kind: kindString, required: true, sent: true},
	TxnID:      {kind: kindString, required: true, sent: true},
	LicenseKey: {kind: kindString, required: true, sent: true},

	City:    {kind: kindString, sent: true},
	State:   {kind: kindString, sent: true},
	Postal:  {kind: kindString, sent: true},
	Country: {kind: kindString, sent: true},

	ShipAddr:    {kind: kindString, sent: true},
	ShipCity:    {kind: kindString, sent: true},
	ShipState:   {kind: kindString, sent: true},
	ShipPostal:  {kind: kindString, sent: true},
	ShipCountry: {kind: kindString, sent: true},

	Email:       {kind: kindString},
	EmailDomain: {kind: kindDerived, sent: true},
	EmailMD5:    {kind: kindDerived, sent: true},
	Phone:       {kind: kindString, sent: true},

	BIN: {kind: kindString, sent: true},

	SessionID:      {kind: kindString, sent: true},
	UserAgent:      {kind: kindString, sent: true},
	AcceptLanguage: {kind: kindString, sent: true},
	ForwardedIP:    {kind: kindString, sent: true},

	Amount:   {kind: kindNumeric, sent: true},
	Currency: {kind: kindString, sent: true},
	TxnType:  {kind: kindString, sent: true},
	ShopID:   {kind: kindStringified, sent: true},

	AVSResult: {kind: kindString, sent: true},
	CVVResult: {kind: kindString, sent: true},

	RequestedType: {kind: kindString, sent: true},
}

// attributeOrder fixes the order in which attributes are checked and reported.
var attributeOrder = []Attribute{
	IP, TxnID, LicenseKey,
	City, State, Postal, Country,
	ShipAddr, ShipCity, ShipState, ShipPostal, ShipCountry,
	Email, EmailDomain, EmailMD5, Phone,
	BIN,
	SessionID, UserAgent, AcceptLanguage, ForwardedIP,
	Amount, Currency, TxnType, ShopID,
	AVSResult, CVVResult,
	RequestedType,
}

// Attributes returns every attribute name known to the schema, in schema order.
func Attributes() []Attribute {
	out := make([]Attribute, len(attributeOrder))
	copy(out, attributeOrder)
	return out
}

// ParseAttribute returns the attribute named s, or false if the schema does
// not know it.
func ParseAttribute(s string) (Attribute, bool) {
	a := Attribute(s)
	_, ok := attributeSchema[a]
	return a, ok
}

// Required reports whether a transaction must carry the attribute.
func (a Attribute) Required() bool {
	return attributeSchema[a].required
}

// Derived reports whether the attribute is computed rather than set by callers.
func (a Attribute) Derived() bool {
	spec, ok := attributeSchema[a]
	return ok && spec.kind == kindDerived
}

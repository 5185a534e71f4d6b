package minfraud

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// TransactionBuilder is the mutable staging area handed to the build
// callback of NewTransaction. It is discarded once the Transaction is built.
type TransactionBuilder struct {
	values map[Attribute]any
}

// Set stages a value for attr. A nil value or an empty string leaves the
// attribute absent.
func (b *TransactionBuilder) Set(attr Attribute, value any) *TransactionBuilder {
	if b.values == nil {
		b.values = make(map[Attribute]any)
	}
	b.values[attr] = value
	return b
}

// Get returns the value currently staged for attr.
func (b *TransactionBuilder) Get(attr Attribute) (any, bool) {
	v, ok := b.values[attr]
	return v, ok
}

// Unset removes a staged value.
func (b *TransactionBuilder) Unset(attr Attribute) *TransactionBuilder {
	delete(b.values, attr)
	return b
}

type transactionOptions struct {
	strongValidation bool
}

// TransactionOption configures NewTransaction.
type TransactionOption func(*transactionOptions)

// WithoutStrongValidation skips the attribute type checks. Required
// attributes are still enforced.
func WithoutStrongValidation() TransactionOption {
	return func(o *transactionOptions) {
		o.strongValidation = false
	}
}

// Transaction is the validated, immutable set of attributes sent to
// minFraud for one fraud check.
type Transaction struct {
	attrs map[Attribute]string
}

// NewTransaction stages attributes through build, checks that the required
// attributes are present, validates attribute types unless
// WithoutStrongValidation is given, and freezes the result.
//
// Errors are *MissingRequiredAttributeError, *UnknownAttributeError or
// *InvalidAttributeTypeError, all matching ErrInvalidTransaction.
func NewTransaction(build func(*TransactionBuilder), opts ...TransactionOption) (*Transaction, error) {
	o := transactionOptions{strongValidation: true}
	for _, opt := range opts {
		opt(&o)
	}

	b := &TransactionBuilder{values: make(map[Attribute]any)}
	if build != nil {
		build(b)
	}

	if err := b.checkRequired(); err != nil {
		return nil, err
	}
	if err := b.checkKnown(); err != nil {
		return nil, err
	}
	if o.strongValidation {
		if err := b.validate(); err != nil {
			return nil, err
		}
	}
	return b.freeze(), nil
}

// Attributes returns every attribute that is present, including the
// derived email_domain and email_md5. The email address itself is only
// used for derivation and is not included.
func (t *Transaction) Attributes() map[Attribute]string {
	out := make(map[Attribute]string, len(t.attrs))
	for k, v := range t.attrs {
		out[k] = v
	}
	return out
}

// Get returns the value of a present attribute.
func (t *Transaction) Get(attr Attribute) (string, bool) {
	v, ok := t.attrs[attr]
	return v, ok
}

// Amount returns the order amount as a decimal.
func (t *Transaction) Amount() (decimal.Decimal, bool) {
	v, ok := t.attrs[Amount]
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func (b *TransactionBuilder) checkRequired() error {
	var missing []Attribute
	for _, attr := range attributeOrder {
		if attr.Required() && !present(b.values[attr]) {
			missing = append(missing, attr)
		}
	}
	if len(missing) > 0 {
		return &MissingRequiredAttributeError{Attributes: missing}
	}
	return nil
}

func (b *TransactionBuilder) checkKnown() error {
	names := make([]string, 0, len(b.values))
	for attr := range b.values {
		names = append(names, string(attr))
	}
	sort.Strings(names)
	for _, name := range names {
		spec, ok := attributeSchema[Attribute(name)]
		if !ok || spec.kind == kindDerived {
			return &UnknownAttributeError{Attribute: Attribute(name)}
		}
	}
	return nil
}

func (b *TransactionBuilder) validate() error {
	for _, attr := range attributeOrder {
		v := b.values[attr]
		if !present(v) {
			continue
		}
		switch attributeSchema[attr].kind {
		case kindString:
			if _, ok := v.(string); !ok {
				return &InvalidAttributeTypeError{Attribute: attr, Expected: "a string", Value: v}
			}
		case kindNumeric:
			if _, ok := toDecimal(v); !ok {
				return &InvalidAttributeTypeError{Attribute: attr, Expected: "a number", Value: v}
			}
		}
	}

	if cvv, ok := b.values[CVVResult].(string); ok && cvv != "" {
		if utf8.RuneCountInString(cvv) != 1 {
			return &InvalidAttributeTypeError{Attribute: CVVResult, Expected: "a single letter", Value: cvv}
		}
	}
	return nil
}

func (b *TransactionBuilder) freeze() *Transaction {
	attrs := make(map[Attribute]string, len(b.values)+2)
	for _, attr := range attributeOrder {
		spec := attributeSchema[attr]
		if !spec.sent || spec.kind == kindDerived {
			continue
		}
		v := b.values[attr]
		if !present(v) {
			continue
		}
		if s := formatValue(v); s != "" {
			attrs[attr] = s
		}
	}

	if v := b.values[Email]; present(v) {
		email := formatValue(v)
		if domain := emailDomain(email); domain != "" {
			attrs[EmailDomain] = domain
		}
		attrs[EmailMD5] = emailMD5(email)
	}
	return &Transaction{attrs: attrs}
}

func present(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

// emailDomain returns the part after the last "@", keeping its casing.
// Trailing empty segments are ignored, so "user@" yields "user".
func emailDomain(email string) string {
	parts := strings.Split(email, "@")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// emailMD5 hashes the lower-cased address.
func emailMD5(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(email)))
	return hex.EncodeToString(sum[:])
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero, false
		}
		return *n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int8:
		return decimal.NewFromInt(int64(n)), true
	case int16:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case uint:
		return fromUint64(uint64(n)), true
	case uint8:
		return fromUint64(uint64(n)), true
	case uint16:
		return fromUint64(uint64(n)), true
	case uint32:
		return fromUint64(uint64(n)), true
	case uint64:
		return fromUint64(n), true
	case float32:
		if math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat32(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(n), true
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	}
	return decimal.Zero, false
}

func fromUint64(n uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(n), 0)
}

// formatValue renders a staged value as the text sent on the wire. Numbers
// never use exponent notation.
func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case decimal.Decimal:
		return x.String()
	case *decimal.Decimal:
		if x == nil {
			return ""
		}
		return x.String()
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

package minfraud

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/hugochinchilla79/minfraud_sdk/models"
)

// errorCodes are err values that make the response unusable.
var errorCodes = map[string]struct{}{
	"INVALID_LICENSE_KEY":  {},
	"IP_REQUIRED":          {},
	"MAX_REQUESTS_REACHED": {},
	"LICENSE_REQUIRED":     {},
	"PERMISSION_REQUIRED":  {},
}

// warningCodes are err values reported as a normal attribute.
var warningCodes = map[string]struct{}{
	"IP_NOT_FOUND":          {},
	"COUNTRY_NOT_FOUND":     {},
	"CITY_NOT_FOUND":        {},
	"CITY_REQUIRED":         {},
	"INVALID_EMAIL_MD5":     {},
	"POSTAL_CODE_REQUIRED":  {},
	"POSTAL_CODE_NOT_FOUND": {},
}

type valueType int

const (
	typeString valueType = iota
	typeInt
	typeFloat
	typeBool
)

// responseTypes lists the normalized keys that are not plain strings.
var responseTypes = map[string]valueType{
	"distance":           typeInt,
	"queries_remaining":  typeInt,
	"ip_accuracy_radius": typeInt,
	"ip_metro_code":      typeInt,

	"ip_latitude":     typeFloat,
	"ip_longitude":    typeFloat,
	"score":           typeFloat,
	"risk_score":      typeFloat,
	"proxy_score":     typeFloat,
	"ip_country_conf": typeFloat,
	"ip_region_conf":  typeFloat,
	"ip_city_conf":    typeFloat,
	"ip_postal_conf":  typeFloat,

	"country_match":             typeBool,
	"high_risk_country":         typeBool,
	"anonymous_proxy":           typeBool,
	"ip_corporate_proxy":        typeBool,
	"free_mail":                 typeBool,
	"carder_email":              typeBool,
	"prepaid":                   typeBool,
	"city_postal_match":         typeBool,
	"ship_city_postal_match":    typeBool,
	"bin_match":                 typeBool,
	"bin_name_match":            typeBool,
	"bin_phone_match":           typeBool,
	"cust_phone_in_billing_loc": typeBool,
	"ship_forward":              typeBool,
}

var booleanResponses = map[string]models.Value{
	"Yes":      models.BoolValue(true),
	"No":       models.BoolValue(false),
	"NA":       models.NullValue(),
	"NotFound": models.NullValue(),
}

// IsErrorCode reports whether code is a fatal minFraud error code.
func IsErrorCode(code string) bool {
	_, ok := errorCodes[code]
	return ok
}

// IsWarningCode reports whether code is a non-fatal minFraud warning code.
func IsWarningCode(code string) bool {
	_, ok := warningCodes[code]
	return ok
}

// Response is the immutable decoded result of one minFraud call. Any field
// the service returns is readable by its normalized name, including fields
// this package does not know about.
type Response struct {
	status int
	body   map[string]models.Value
}

// DecodeResponse parses a raw minFraud body.
//
// A false success yields a *TransportError carrying status. A known error
// code in the err field yields a *ServiceError; warning codes are kept as
// the plain err attribute. When adjust is non-nil it receives the decoded
// fields and may add, remove or overwrite entries before the Response is
// frozen.
func DecodeResponse(status int, body []byte, success bool, adjust func(map[string]models.Value)) (*Response, error) {
	if !success {
		return nil, &TransportError{StatusCode: status, Body: body}
	}

	text, err := charmap.ISO8859_1.NewDecoder().Bytes(body)
	if err != nil {
		return nil, fmt.Errorf("minfraud: decode response body: %w", err)
	}

	fields := parseBody(string(text))
	if errValue, ok := fields["err"].Str(); ok && IsErrorCode(errValue) {
		return nil, &ServiceError{Code: errValue}
	}

	if adjust != nil {
		adjust(fields)
	}

	frozen := make(map[string]models.Value, len(fields))
	for k, v := range fields {
		frozen[k] = v
	}
	return &Response{status: status, body: frozen}, nil
}

// parseBody splits "k1=v1;k2=v2;" into normalized, coerced fields. Empty
// segments are skipped and only the first "=" separates key from value.
// Later duplicates win.
func parseBody(text string) map[string]models.Value {
	fields := make(map[string]models.Value)
	for _, segment := range strings.Split(text, ";") {
		if segment == "" {
			continue
		}
		rawKey, rawValue, hasValue := strings.Cut(segment, "=")
		key := NormalizeKey(rawKey)
		fields[key] = coerce(key, rawValue, hasValue)
	}
	return fields
}

func coerce(key, raw string, hasValue bool) models.Value {
	switch responseTypes[key] {
	case typeBool:
		if v, ok := booleanResponses[raw]; ok && hasValue {
			return v
		}
		return models.NullValue()
	case typeInt:
		return models.IntValue(leadingInt(raw))
	case typeFloat:
		return models.FloatValue(leadingFloat(raw))
	}
	if !hasValue {
		return models.NullValue()
	}
	return models.StringValue(raw)
}

// leadingInt parses the longest integer prefix of s, ignoring leading
// whitespace. It returns 0 when there is none.
func leadingInt(s string) int64 {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, _ := strconv.ParseInt(s[:end], 10, 64)
	return n
}

// leadingFloat parses the longest decimal number prefix of s, ignoring
// leading whitespace. It returns 0 when there is none.
func leadingFloat(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end < len(s) && s[end] == '.' {
		frac := end + 1
		for frac < len(s) && s[frac] >= '0' && s[frac] <= '9' {
			frac++
		}
		if frac > end+1 {
			end = frac
		}
	}
	if end == start {
		return 0
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		digits := exp
		for exp < len(s) && s[exp] >= '0' && s[exp] <= '9' {
			exp++
		}
		if exp > digits {
			end = exp
		}
	}
	f, _ := strconv.ParseFloat(s[:end], 64)
	return f
}

// StatusCode returns the HTTP status the response was decoded from.
func (r *Response) StatusCode() int { return r.status }

// Lookup returns the value stored under a normalized name.
func (r *Response) Lookup(name string) (models.Value, bool) {
	v, ok := r.body[name]
	return v, ok
}

// Get returns the value stored under name, or the Absent zero Value.
func (r *Response) Get(name string) models.Value {
	return r.body[name]
}

// Has reports whether the response carries name.
func (r *Response) Has(name string) bool {
	_, ok := r.body[name]
	return ok
}

// String returns a string field. ok is false if the field is missing or
// not a string.
func (r *Response) String(name string) (string, bool) { return r.body[name].Str() }

// Int returns an integer field.
func (r *Response) Int(name string) (int64, bool) { return r.body[name].Int() }

// Float returns a float field.
func (r *Response) Float(name string) (float64, bool) { return r.body[name].Float() }

// Bool returns a boolean field. ok is false for "NA" and "NotFound".
func (r *Response) Bool(name string) (bool, bool) { return r.body[name].Bool() }

// Keys returns the normalized field names in sorted order.
func (r *Response) Keys() []string {
	keys := make([]string, 0, len(r.body))
	for k := range r.body {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Body returns a copy of all decoded fields.
func (r *Response) Body() map[string]models.Value {
	out := make(map[string]models.Value, len(r.body))
	for k, v := range r.body {
		out[k] = v
	}
	return out
}

// Warning returns the err field when it holds a known warning code.
func (r *Response) Warning() (string, bool) {
	code, ok := r.String("err")
	if !ok || !IsWarningCode(code) {
		return "", false
	}
	return code, true
}

// Insights returns the typed view of the commonly used fields.
func (r *Response) Insights() models.Insights {
	in := models.Insights{
		RiskScore:        r.floatPtr("risk_score"),
		Score:            r.floatPtr("score"),
		ProxyScore:       r.floatPtr("proxy_score"),
		Distance:         r.intPtr("distance"),
		CountryMatch:     r.boolPtr("country_match"),
		HighRiskCountry:  r.boolPtr("high_risk_country"),
		AnonymousProxy:   r.boolPtr("anonymous_proxy"),
		FreeMail:         r.boolPtr("free_mail"),
		CarderEmail:      r.boolPtr("carder_email"),
		QueriesRemaining: r.intPtr("queries_remaining"),
	}
	in.MaxmindID, _ = r.String("maxmind_id")
	in.Warning, _ = r.Warning()
	return in
}

func (r *Response) floatPtr(name string) *float64 {
	if f, ok := r.Float(name); ok {
		return &f
	}
	return nil
}

func (r *Response) intPtr(name string) *int64 {
	if i, ok := r.Int(name); ok {
		return &i
	}
	return nil
}

func (r *Response) boolPtr(name string) *bool {
	if b, ok := r.Bool(name); ok {
		return &b
	}
	return nil
}

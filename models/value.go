package models

import (
	"strconv"
)

// Kind identifies the type held by a Value.
type Kind int

const (
	// Absent is the kind of the zero Value, returned for keys a response
	// does not carry.
	Absent Kind = iota
	// Null marks a key that is present without a usable value, such as a
	// boolean field reported as "NA" or "NotFound".
	Null
	String
	Int
	Float
	Bool
)

func (k Kind) String() string {
	switch k {
	case Absent:
		return "absent"
	case Null:
		return "null"
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a decoded minFraud response value.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

// StringValue returns a Value holding s.
func StringValue(s string) Value { return Value{kind: String, s: s} }

// IntValue returns a Value holding i.
func IntValue(i int64) Value { return Value{kind: Int, i: i} }

// FloatValue returns a Value holding f.
func FloatValue(f float64) Value { return Value{kind: Float, f: f} }

// BoolValue returns a Value holding b.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// NullValue returns a present Value without content.
func NullValue() Value { return Value{kind: Null} }

// Kind returns the type held by v.
func (v Value) Kind() Kind { return v.kind }

// IsPresent reports whether the key was present in the response, even if
// its value is null.
func (v Value) IsPresent() bool { return v.kind != Absent }

// IsNull reports whether v carries no usable value.
func (v Value) IsNull() bool { return v.kind == Absent || v.kind == Null }

func (v Value) Str() (string, bool) { return v.s, v.kind == String }

func (v Value) Int() (int64, bool) { return v.i, v.kind == Int }

func (v Value) Float() (float64, bool) { return v.f, v.kind == Float }

func (v Value) Bool() (bool, bool) { return v.b, v.kind == Bool }

// Interface returns the held value as string, int64, float64, bool, or nil
// for null and absent values.
func (v Value) Interface() any {
	switch v.kind {
	case String:
		return v.s
	case Int:
		return v.i
	case Float:
		return v.f
	case Bool:
		return v.b
	}
	return nil
}

// String formats v for display. Null and absent values format as "".
func (v Value) String() string {
	switch v.kind {
	case String:
		return v.s
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case Bool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

// Equal reports whether v and o hold the same kind and content.
func (v Value) Equal(o Value) bool {
	return v == o
}

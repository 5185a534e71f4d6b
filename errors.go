package minfraud

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds, usable with errors.Is.
var (
	// ErrInvalidTransaction is matched by every transaction construction failure.
	ErrInvalidTransaction = errors.New("minfraud: invalid transaction")

	// ErrTransport is matched by HTTP-layer failures.
	ErrTransport = errors.New("minfraud: transport failure")

	// ErrService is matched by error codes returned by the minFraud service.
	ErrService = errors.New("minfraud: service error")
)

// MissingRequiredAttributeError is returned when a required transaction
// attribute is absent or empty.
type MissingRequiredAttributeError struct {
	Attributes []Attribute
}

func (e *MissingRequiredAttributeError) Error() string {
	names := make([]string, len(e.Attributes))
	for i, a := range e.Attributes {
		names[i] = string(a)
	}
	return fmt.Sprintf("minfraud: required transaction attributes not set: %s", strings.Join(names, ", "))
}

func (e *MissingRequiredAttributeError) Is(target error) bool {
	return target == ErrInvalidTransaction
}

// InvalidAttributeTypeError is returned by strong validation when an
// attribute holds a value of the wrong type or shape.
type InvalidAttributeTypeError struct {
	Attribute Attribute
	Expected  string
	Value     any
}

func (e *InvalidAttributeTypeError) Error() string {
	return fmt.Sprintf("minfraud: transaction %s must be %s (got %T)", e.Attribute, e.Expected, e.Value)
}

func (e *InvalidAttributeTypeError) Is(target error) bool {
	return target == ErrInvalidTransaction
}

// UnknownAttributeError is returned when a caller sets an attribute the
// schema does not accept as input.
type UnknownAttributeError struct {
	Attribute Attribute
}

func (e *UnknownAttributeError) Error() string {
	if e.Attribute.Derived() {
		return fmt.Sprintf("minfraud: transaction %s is derived and cannot be set", e.Attribute)
	}
	return fmt.Sprintf("minfraud: unknown transaction attribute %q", string(e.Attribute))
}

func (e *UnknownAttributeError) Is(target error) bool {
	return target == ErrInvalidTransaction
}

// TransportError is returned when the HTTP call fails or the service
// responds with a non-success status. StatusCode is zero when no response
// was received.
type TransportError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("minfraud: connection failed: %v", e.Err)
	}
	return fmt.Sprintf("minfraud: service responded with http error %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// ServiceError is returned when the decoded response carries one of the
// fatal error codes in its err field.
type ServiceError struct {
	Code string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("minfraud: error message from minFraud: %s", e.Code)
}

func (e *ServiceError) Is(target error) bool {
	return target == ErrService
}

package storage

import (
	"errors"
	"fmt"
)

// Definition-time errors. These surface from type constructors and schema
// declaration and must be fixed before a contract ships; none of them can
// occur on a deployed layout.
var (
	ErrLayoutTooLarge      = errors.New("type exceeds the storage slot limit")
	ErrInvalidMappingUsage = errors.New("mapping may only be declared as a top-level storage variable")
	ErrInvalidKeyType      = errors.New("type cannot be used as a mapping key")
	ErrDuplicateVariable   = errors.New("storage variable already declared")
	ErrInvalidName         = errors.New("invalid storage variable name")
	ErrUnknownType         = errors.New("unknown storage type")
)

// Runtime errors.
var (
	// ErrKeyArityMismatch is returned when an accessor receives a number of
	// keys different from the mapping's declared arity.
	ErrKeyArityMismatch = errors.New("key count does not match declared arity")
	// ErrOutOfRange reports a stored or supplied value outside the target
	// type's range. It aborts the current invocation; the slot itself is left
	// untouched.
	ErrOutOfRange = errors.New("value out of range")
	// ErrValueType reports a Go value whose dynamic type does not match the
	// storable type it is encoded as.
	ErrValueType = errors.New("value does not match storable type")
)

// DecodeError wraps a failure to interpret a stored slot as a value of a
// declared type.
type DecodeError struct {
	Type string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

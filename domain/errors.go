package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMixedOperators is returned when an expression mixes operator keys
	// and plain fields at a level where only one of the two is allowed.
	ErrMixedOperators = errors.New("cannot mix operators and normal fields")
	// ErrNoFieldName is returned when an empty field address is used in an
	// object expression or a sort key.
	ErrNoFieldName = errors.New("empty field name")
)

// ErrCannotCompare is returned when [Comparer.Compare] is called with two
// values that cannot be compared by the current [Comparer] implementation.
type ErrCannotCompare struct {
	A any
	B any
}

// Error implements [error].
func (e ErrCannotCompare) Error() string {
	return fmt.Sprintf("cannot compare %T with %T", e.A, e.B)
}

// ErrConfiguration is returned when a config value is outside its valid
// range.
type ErrConfiguration struct {
	Field string
	Value any
}

// Error implements [error].
func (e ErrConfiguration) Error() string {
	return fmt.Sprintf("invalid configuration: %s = %v", e.Field, e.Value)
}

// ErrUnknownOperator is returned when an expression uses an unrecognized
// dollar key in a position where a logical operator is required.
type ErrUnknownOperator struct {
	Operator string
}

// Error implements [error].
func (e ErrUnknownOperator) Error() string {
	return fmt.Sprintf("unknown operator %q", e.Operator)
}

// ErrOperatorArgument is returned when an operator is given an argument of an
// invalid type or shape.
type ErrOperatorArgument struct {
	Operator string
	Want     string
	Actual   any
}

// Error implements [error].
func (e ErrOperatorArgument) Error() string {
	return fmt.Sprintf(
		"%s value should be of type %s, got %T",
		e.Operator, e.Want, e.Actual,
	)
}

// ErrBadPattern is returned when a regular expression supplied via $regex or
// $match cannot be compiled. Unlike per-item evaluation problems, a malformed
// pattern is a structural defect of the expression itself and propagates.
type ErrBadPattern struct {
	Pattern string
	Err     error
}

// Error implements [error].
func (e ErrBadPattern) Error() string {
	return fmt.Sprintf("malformed pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap exposes the underlying compile error.
func (e ErrBadPattern) Unwrap() error { return e.Err }

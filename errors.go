package supershape

import (
	"fmt"
)

// DomainError is returned when Superformula parameters or an intermediate
// result lie outside the domain where the formula is defined: a zero
// denominator, a zero n1 exponent, a non-finite parameter, or a radius that
// evaluates to infinity or NaN.
type DomainError struct {
	// Param names the offending parameter ("a", "b", "n1", ...). It is empty
	// when the failure is a non-finite result rather than a bad parameter.
	Param string
	Value float64
	Msg   string
}

func (e *DomainError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("supershape: domain error: %s", e.Msg)
	}
	return fmt.Sprintf("supershape: domain error: %s = %g: %s", e.Param, e.Value, e.Msg)
}

// Is reports whether target is a *DomainError, so that
// errors.Is(err, &DomainError{}) matches any domain error.
func (e *DomainError) Is(target error) bool {
	_, ok := target.(*DomainError)
	return ok
}

// ConfigError is returned when the mesh configuration is unusable: a
// resolution below [MinSegments], a non-finite scale factor, a negative
// subdivision level and the like.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("supershape: invalid %s: %s", e.Field, e.Msg)
}

func (e *ConfigError) Is(target error) bool {
	_, ok := target.(*ConfigError)
	return ok
}

func newConfigError(field, format string, args ...any) *ConfigError {
	return &ConfigError{
		Field: field,
		Msg:   fmt.Sprintf(format, args...),
	}
}

// Axis identifies one of the two angular axes of a supershape.
type Axis int

const (
	Longitude Axis = iota
	Latitude
)

func (a Axis) String() string {
	switch a {
	case Longitude:
		return "longitude"
	case Latitude:
		return "latitude"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// SampleError reports the axis and sample at which building a mesh failed.
// It wraps the underlying error, usually a *DomainError.
//
// When the parameters of an axis are rejected before any sampling, Index is
// -1 and Angle is NaN.
type SampleError struct {
	Axis  Axis
	Index int
	Angle float64
	Err   error
}

func (e *SampleError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("supershape: %s parameters: %s", e.Axis, e.Err)
	}
	return fmt.Sprintf("supershape: %s sample %d (angle %g): %s", e.Axis, e.Index, e.Angle, e.Err)
}

func (e *SampleError) Unwrap() error {
	return e.Err
}

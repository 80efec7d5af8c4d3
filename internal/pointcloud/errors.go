package pointcloud

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is the only error generators raise.
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError names the offending field.
type InvalidParameterError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// InvalidParameter builds an *InvalidParameterError.
func InvalidParameter(field string, value any, reason string) error {
	return &InvalidParameterError{Field: field, Value: value, Reason: reason}
}

package mapping

import (
	"errors"
	"fmt"
)

// MappingError reports a record that cannot be mapped. It is a per-record
// failure: the record is skipped and loading continues.
type MappingError struct {
	Field  string
	Reason string
}

func (e *MappingError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("mapping: field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("mapping: required field %q has no value", e.Field)
}

// NewMappingError creates a MappingError for field.
func NewMappingError(field, reason string) *MappingError {
	return &MappingError{Field: field, Reason: reason}
}

// AsMappingError extracts a MappingError from err.
func AsMappingError(err error) (*MappingError, bool) {
	var me *MappingError
	if errors.As(err, &me) {
		return me, true
	}
	return nil, false
}

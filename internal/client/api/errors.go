package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/witter/internal/common"
)

// ValidationError carries field-level rejection messages from the backend.
// It matches common.ErrValidation under errors.Is.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation error"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return "validation error: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == common.ErrValidation
}

// AsValidationError unwraps err into a *ValidationError if one is present.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

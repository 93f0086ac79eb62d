package errors

import (
	"errors"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrStatusRegression = errors.New("status index cannot decrease")
	ErrInvalidStatus    = errors.New("invalid status index")
	ErrInvalidPayment   = errors.New("invalid payment details")
)

// ValidationError carries the complete list of problems found in a
// customer payload. Callers report all of them at once.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// NewValidation builds a ValidationError from accumulated messages.
func NewValidation(problems []string) *ValidationError {
	return &ValidationError{Problems: problems}
}

// AsValidation extracts a ValidationError when err wraps one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

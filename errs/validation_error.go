package errs

import (
	"errors"
	"strings"

	"github.com/napalu/argmatch/i18n"
)

// ValidationError aggregates every error found by a validation pass
type ValidationError struct {
	Errors []error
}

// Error renders the summary followed by each error on its own line
func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(i18n.DefaultProvider().Sprintf(ErrValidationFailedKey, len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString("\n  ")
		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Unwrap exposes the aggregated errors to errors.Is and errors.As
func (e *ValidationError) Unwrap() []error {
	return e.Errors
}

// Is matches ErrValidationFailed
func (e *ValidationError) Is(target error) bool {
	return ErrValidationFailed.Is(target)
}

// MatchErrors returns the aggregated errors which are *MatchError
func (e *ValidationError) MatchErrors() []*MatchError {
	out := make([]*MatchError, 0, len(e.Errors))
	for _, err := range e.Errors {
		var me *MatchError
		if errors.As(err, &me) {
			out = append(out, me)
		}
	}

	return out
}

// AsMatchErrors flattens err into its *MatchError parts. It handles a single
// *MatchError, a *ValidationError, and anything wrapping either.
func AsMatchErrors(err error) []*MatchError {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.MatchErrors()
	}
	var me *MatchError
	if errors.As(err, &me) {
		return []*MatchError{me}
	}

	return nil
}

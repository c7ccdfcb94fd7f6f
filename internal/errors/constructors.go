package errors

import "fmt"

// StaleReference reports a point that refers to reference data the store no
// longer holds.
func StaleReference(kind, id string) *TripError {
	return New(ErrCodeStaleReference, fmt.Sprintf("%s '%s' does not resolve", kind, id)).
		WithDetail("kind", kind).
		WithDetail("id", id)
}

// NotFound reports an unknown entity id.
func NotFound(kind, id string) *TripError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s '%s' not found", kind, id)).
		WithDetail("kind", kind).
		WithDetail("id", id)
}

// Validation reports a candidate the store refused.
func Validation(field, reason string) *TripError {
	return New(ErrCodeValidation, fmt.Sprintf("%s: %s", field, reason)).
		WithDetail("field", field)
}

// InvalidInput reports a form value that could not be parsed.
func InvalidInput(field string, err error) *TripError {
	return Wrap(err, ErrCodeInvalidInput, fmt.Sprintf("invalid %s", field)).
		WithDetail("field", field)
}

// Internal wraps an unexpected failure, typically from the database.
func Internal(op string, err error) *TripError {
	return Wrap(err, ErrCodeInternal, op)
}

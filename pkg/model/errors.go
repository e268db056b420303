package model

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when no customer has the requested id.
	ErrNotFound = errors.New("customer not found")

	// ErrValidation is the root of all validation failures. Use errors.As with *ValidationError
	// to get the individual field problems.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable is returned when the customer service cannot be reached or answers with
	// a server error.
	ErrUnavailable = errors.New("customer service unavailable")
)

// FieldProblem is a single failed check on a draft field.
type FieldProblem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError describes why a draft was rejected. Problems is empty when the rejection came
// from the service and only a reason text is known.
type ValidationError struct {
	Problems []FieldProblem
	Reason   string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		if e.Reason == "" {
			return ErrValidation.Error()
		}
		return e.Reason
	}
	messages := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		messages = append(messages, p.Message)
	}
	return strings.Join(messages, " ")
}

// Unwrap makes errors.Is(err, ErrValidation) hold for every validation error.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Problem returns the message for the given field, or "" if the field passed.
func (e *ValidationError) Problem(field string) string {
	for _, p := range e.Problems {
		if p.Field == field {
			return p.Message
		}
	}
	return ""
}

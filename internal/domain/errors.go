package domain

import "errors"

// Sentinel errors shared by services and the delivery layer. Callers match them
// with errors.Is; services wrap anything else with context.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongCredentials   = errors.New("wrong credentials")

	ErrEventNotFound    = errors.New("event not found")
	ErrAlreadyAttending = errors.New("already attending this event")
	ErrNotAttending     = errors.New("not attending this event")

	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
)

// ValidationError carries the individual field messages of a rejected input.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return ErrValidation.Error()
	}
	msg := e.Problems[0]
	for _, p := range e.Problems[1:] {
		msg += "; " + p
	}
	return msg
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError returns a ValidationError for the given messages.
func NewValidationError(problems ...string) error {
	return &ValidationError{Problems: problems}
}

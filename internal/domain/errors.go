package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrItemNotFound indicates the cart exists but the addressed line does not.
	ErrItemNotFound = errors.New("item not found in cart")
	// ErrInvalidTransition indicates an order status change the state machine rejects.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates the caller lacks permission for the operation.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError marks input the caller can correct. Its message is safe to
// return to clients verbatim, unlike other unrecognized errors.
type ValidationError struct {
	msg string
}

func Invalid(msg string) error {
	return &ValidationError{msg: msg}
}

func (e *ValidationError) Error() string {
	return e.msg
}

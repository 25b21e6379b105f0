package auth

import "errors"

var (
	// ErrInvalidResponse marks a 2xx auth response missing the token or
	// user.
	ErrInvalidResponse = errors.New("invalid response from server")

	// ErrNotAuthenticated is returned when an operation needs a token and
	// the session has none.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Error is a failed login or registration. Message is the text kept in
// the session's error slot.
type Error struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

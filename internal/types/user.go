package types

import "strings"

// User is the account record returned by the backend on login/register.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Valid reports whether the user record carries an identity.
func (u *User) Valid() bool {
	return u != nil && strings.TrimSpace(u.ID) != ""
}

// Credentials is the persisted credential pair
type Credentials struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// LoginRequest is the body for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body for POST /auth/register
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// AuthResponse is the body returned by both auth endpoints. Error is set
// instead of Token/User when the backend rejects the request.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
	Error string `json:"error,omitempty"`
}

// ErrorResponse is the backend's error envelope
type ErrorResponse struct {
	Error string `json:"error"`
}

// Package auth owns the client's authentication session: it restores the
// persisted credential pair at startup, runs login and registration against
// the backend, and hands out API clients bound to the current token.
package auth

import "github.com/pageza/fridge/internal/types"

// State is the lifecycle position of a Manager.
type State int

const (
	StateUnknown State = iota
	StateRestoring
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "invalid"
	}
}

// Session is a snapshot of the manager's state. User and Token are both
// set or both empty.
type Session struct {
	User      *types.User
	Token     string
	IsLoading bool
	Error     string
	State     State
}

// Authenticated reports whether the snapshot carries credentials.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

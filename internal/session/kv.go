// Package session persists the client's credential pair (bearer token and
// user record) in a key-value backend and restores it on startup.
package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a KeyValue backend when the key is absent.
var ErrNotFound = errors.New("session key not found")

// KeyValue is the persistent surface the Store writes through. Get must
// return ErrNotFound for a missing key; Delete of a missing key is not an
// error.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

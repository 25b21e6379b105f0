package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pageza/fridge/internal/types"
)

// Fixed keys of the credential pair
const (
	TokenKey = "token"
	UserKey  = "user"
)

// Store saves, loads and clears the credential pair. Failures of the
// underlying backend never escape: they are logged and the pair is treated
// as absent.
type Store struct {
	kv  KeyValue
	log logrus.FieldLogger
}

// NewStore wraps a key-value backend.
func NewStore(kv KeyValue, log logrus.FieldLogger) *Store {
	return &Store{kv: kv, log: log.WithField("component", "session_store")}
}

// Save persists the token and the user record.
func (s *Store) Save(ctx context.Context, token string, user types.User) {
	data, err := json.Marshal(user)
	if err != nil {
		s.log.WithError(err).Warn("failed to encode user for session store")
		return
	}
	if err := s.kv.Set(ctx, TokenKey, token); err != nil {
		s.log.WithError(err).Warn("failed to persist session token")
		return
	}
	if err := s.kv.Set(ctx, UserKey, string(data)); err != nil {
		s.log.WithError(err).Warn("failed to persist session user")
	}
}

// Load returns the stored credential pair. If either entry is missing or
// the user entry is not a well-formed object, both entries are cleared and
// ok is false.
func (s *Store) Load(ctx context.Context) (creds *types.Credentials, ok bool) {
	token, tokenErr := s.kv.Get(ctx, TokenKey)
	rawUser, userErr := s.kv.Get(ctx, UserKey)

	for _, err := range []error{tokenErr, userErr} {
		if err != nil && !errors.Is(err, ErrNotFound) {
			s.log.WithError(err).Warn("failed to read session store")
			s.Clear(ctx)
			return nil, false
		}
	}

	if tokenErr != nil && userErr != nil {
		return nil, false
	}

	user, err := parseUser(rawUser)
	if tokenErr != nil || userErr != nil || strings.TrimSpace(token) == "" || err != nil {
		s.log.WithError(err).Debug("discarding incomplete or corrupt session")
		s.Clear(ctx)
		return nil, false
	}

	return &types.Credentials{Token: token, User: *user}, true
}

// Clear removes both entries unconditionally.
func (s *Store) Clear(ctx context.Context) {
	for _, key := range []string{TokenKey, UserKey} {
		if err := s.kv.Delete(ctx, key); err != nil {
			s.log.WithError(err).WithField("key", key).Warn("failed to clear session entry")
		}
	}
}

var errCorruptUser = errors.New("stored user is not a JSON object")

func parseUser(raw string) (*types.User, error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errCorruptUser
	}
	var user types.User
	if err := json.Unmarshal(trimmed, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

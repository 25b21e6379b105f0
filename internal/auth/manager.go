package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/publicsuffix"

	"github.com/pageza/fridge/internal/api"
	"github.com/pageza/fridge/internal/logger"
	"github.com/pageza/fridge/internal/session"
	"github.com/pageza/fridge/internal/types"
)

// DefaultBaseURL is the backend used when none is configured.
const DefaultBaseURL = "http://localhost:3000"

// Manager is the single source of truth for whether the user is signed
// in. It is safe for concurrent use; when calls overlap, the last one to
// finish decides the final state.
type Manager struct {
	baseURL    string
	store      *session.Store
	httpClient *http.Client
	nav        Navigator
	log        logrus.FieldLogger
	clientOpts []api.Option
	timeout    time.Duration

	// persistMu keeps the stored credentials and the in-memory state
	// written as one step
	persistMu sync.Mutex

	mu      sync.Mutex
	state   Session
	subs    map[int]func(Session)
	nextSub int
}

// Option configures a Manager.
type Option func(*Manager)

// WithBaseURL sets the backend base URL.
func WithBaseURL(u string) Option {
	return func(m *Manager) { m.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the cookie-capable default client. nil keeps
// the default.
func WithHTTPClient(hc *http.Client) Option {
	return func(m *Manager) { m.httpClient = hc }
}

// WithTimeout bounds every request. The client passed to WithHTTPClient is
// copied, never modified. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) { m.timeout = d }
}

// WithNavigator sets where navigation side effects go.
func WithNavigator(n Navigator) Option {
	return func(m *Manager) { m.nav = n }
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Manager) { m.log = log }
}

// WithClientOptions are applied to every client built by Client.
func WithClientOptions(opts ...api.Option) Option {
	return func(m *Manager) { m.clientOpts = append(m.clientOpts, opts...) }
}

// New builds a manager and restores the persisted session before
// returning. No network call is made.
func New(ctx context.Context, store *session.Store, opts ...Option) *Manager {
	m := &Manager{
		baseURL: DefaultBaseURL,
		store:   store,
		nav:     noopNavigator{},
		log:     logger.Discard(),
		state:   Session{State: StateUnknown, IsLoading: true},
		subs:    make(map[int]func(Session)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.httpClient == nil {
		jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		m.httpClient = &http.Client{Jar: jar}
	}
	if m.timeout > 0 {
		hc := *m.httpClient
		hc.Timeout = m.timeout
		m.httpClient = &hc
	}
	m.log = m.log.WithField("component", "auth")

	m.restore(ctx)
	return m
}

func (m *Manager) restore(ctx context.Context) {
	m.update(func(s *Session) { s.State = StateRestoring })

	creds, ok := m.store.Load(ctx)
	m.update(func(s *Session) {
		s.IsLoading = false
		if !ok {
			s.State = StateAnonymous
			return
		}
		user := creds.User
		s.User = &user
		s.Token = creds.Token
		s.State = StateAuthenticated
	})
	if ok {
		m.log.WithField("user_id", creds.User.ID).Debug("session restored")
	}
}

// Session returns the current snapshot.
func (m *Manager) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

func (m *Manager) snapshot() Session {
	s := m.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Subscribe registers fn to receive every new snapshot. The returned
// function removes it.
func (m *Manager) Subscribe(fn func(Session)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// update applies fn to the state and notifies subscribers outside the lock
func (m *Manager) update(fn func(*Session)) {
	m.apply(fn)()
}

// apply changes the state and returns the pending notification
func (m *Manager) apply(fn func(*Session)) (notify func()) {
	m.mu.Lock()
	fn(&m.state)
	snap := m.snapshot()
	subs := make([]func(Session), 0, len(m.subs))
	for _, sub := range m.subs {
		subs = append(subs, sub)
	}
	m.mu.Unlock()

	return func() {
		for _, sub := range subs {
			sub(snap)
		}
	}
}

// authOp holds the endpoint and messages of login or registration
type authOp struct {
	name         string
	path         string
	fallback     string
	missingToken string
	missingUser  string
}

var (
	loginOp = authOp{
		name:         "login",
		path:         "/auth/login",
		fallback:     "Login failed",
		missingToken: "Invalid response from server: missing token",
		missingUser:  "Invalid response from server: missing user data",
	}
	registerOp = authOp{
		name:         "register",
		path:         "/auth/register",
		fallback:     "Registration failed",
		missingToken: "Invalid response from server",
		missingUser:  "Invalid response from server",
	}
)

// Login signs in with email and password. On failure the returned error's
// message is also stored in the session's Error field.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	return m.authenticate(ctx, loginOp, types.LoginRequest{Email: email, Password: password})
}

// Register creates an account and signs in. name may be empty.
func (m *Manager) Register(ctx context.Context, email, password, name string) error {
	return m.authenticate(ctx, registerOp, types.RegisterRequest{Email: email, Password: password, Name: name})
}

func (m *Manager) authenticate(ctx context.Context, op authOp, payload any) error {
	log := m.log.WithField("op", op.name)
	m.update(func(s *Session) {
		s.IsLoading = true
		s.Error = ""
	})

	resp, err := m.post(ctx, op.path, payload)
	if err != nil {
		return m.fail(log, &Error{Op: op.name, Message: op.fallback, Err: err})
	}

	var data types.AuthResponse
	decodeErr := json.Unmarshal(resp.body, &data)

	switch {
	case resp.status < 200 || resp.status > 299:
		msg := data.Error
		if msg == "" {
			msg = op.fallback
		}
		return m.fail(log, &Error{Op: op.name, StatusCode: resp.status, Message: msg})
	case decodeErr != nil:
		return m.fail(log, &Error{Op: op.name, StatusCode: resp.status, Message: "Invalid response from server", Err: fmt.Errorf("%w: %v", ErrInvalidResponse, decodeErr)})
	case data.Token == "":
		return m.fail(log, &Error{Op: op.name, StatusCode: resp.status, Message: op.missingToken, Err: ErrInvalidResponse})
	case !data.User.Valid():
		return m.fail(log, &Error{Op: op.name, StatusCode: resp.status, Message: op.missingUser, Err: ErrInvalidResponse})
	}

	user := *data.User
	m.persistMu.Lock()
	m.store.Save(ctx, data.Token, user)
	notify := m.apply(func(s *Session) {
		s.User = &user
		s.Token = data.Token
		s.State = StateAuthenticated
		s.IsLoading = false
	})
	m.persistMu.Unlock()
	notify()
	log.WithField("user_id", user.ID).Info("signed in")
	m.nav.Navigate(RouteInterface)
	return nil
}

// fail records err in the error slot. Credentials are left as they were.
func (m *Manager) fail(log logrus.FieldLogger, err *Error) error {
	log.WithError(err).Warn("authentication failed")
	m.update(func(s *Session) {
		s.IsLoading = false
		s.Error = err.Message
	})
	return err
}

type authResponse struct {
	status int
	body   []byte
}

func (m *Manager) post(ctx context.Context, path string, payload any) (*authResponse, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return &authResponse{status: resp.StatusCode, body: body}, nil
}

// Logout clears the persisted and in-memory credentials. Calling it again
// has no further effect.
func (m *Manager) Logout(ctx context.Context) {
	m.persistMu.Lock()
	m.store.Clear(ctx)
	notify := m.apply(func(s *Session) {
		s.User = nil
		s.Token = ""
		s.State = StateAnonymous
	})
	m.persistMu.Unlock()
	notify()
	m.log.Debug("signed out")
	m.nav.Navigate(RouteLanding)
}

// Client returns an API client bound to the current token. Build a new
// one after the session changes.
func (m *Manager) Client(opts ...api.Option) *api.Client {
	token := m.Session().Token
	all := make([]api.Option, 0, len(m.clientOpts)+len(opts)+1)
	all = append(all, api.WithHTTPClient(m.httpClient))
	all = append(all, m.clientOpts...)
	all = append(all, opts...)
	return api.NewClient(m.baseURL, token, all...)
}

// Claims decodes the current token without verifying its signature.
func (m *Manager) Claims() (*types.TokenClaims, error) {
	token := m.Session().Token
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	claims := &types.TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return claims, nil
}

// Package api is the typed façade over the Fridge backend REST API. A
// Client is bound to one bearer token at construction; build a new one
// when the token changes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pageza/fridge/internal/logger"
)

// Client groups the resource APIs. All requests share the headers computed
// in NewClient.
type Client struct {
	baseURL    string
	headers    http.Header
	httpClient *http.Client
	log        logrus.FieldLogger
	metrics    *Metrics
	validate   *validator.Validate
	newID      func() string

	Recipes *RecipeService
	User    *UserService
	Fitness *FitnessService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the transport. Defaults to a plain http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// WithMetrics records per-request metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithIDGenerator replaces the generator used for recipes that arrive
// without an id.
func WithIDGenerator(fn func() string) Option {
	return func(c *Client) { c.newID = fn }
}

// NewClient builds a façade for baseURL authorized with token. An empty
// token sends no Authorization header.
func NewClient(baseURL, token string, opts ...Option) *Client {
	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")
	if token != "" {
		headers.Set("Authorization", "Bearer "+token)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		headers:    headers,
		httpClient: &http.Client{},
		log:        logger.Discard(),
		validate:   newValidator(),
		newID:      func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithField("component", "api")

	c.Recipes = &RecipeService{client: c}
	c.User = &UserService{client: c}
	c.Fitness = &FitnessService{client: c}
	return c
}

// newValidator reports fields by their JSON name
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Authorized reports whether the client carries a bearer token.
func (c *Client) Authorized() bool {
	return c.headers.Get("Authorization") != ""
}

// operation describes one façade call
type operation struct {
	resource string
	action   string
	method   string
	path     string
	fallback string
}

// response is a received HTTP response with its body fully read
type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// send performs a single attempt of op. Transport failures come back as
// *APIError carrying the fallback message.
func (c *Client) send(ctx context.Context, op operation, payload any) (*response, error) {
	start := time.Now()
	log := c.log.WithFields(logrus.Fields{"resource": op.resource, "action": op.action})

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &APIError{Resource: op.resource, Action: op.action, Message: op.fallback, Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, op.method, c.baseURL+op.path, body)
	if err != nil {
		return nil, &APIError{Resource: op.resource, Action: op.action, Message: op.fallback, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	for k, v := range c.headers {
		req.Header[k] = v
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(op.resource, op.action, outcomeTransport, time.Since(start))
		log.WithError(err).Warn("request failed")
		return nil, &APIError{Resource: op.resource, Action: op.action, Message: op.fallback, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.observe(op.resource, op.action, outcomeTransport, time.Since(start))
		return nil, &APIError{Resource: op.resource, Action: op.action, StatusCode: resp.StatusCode, Message: op.fallback, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	r := &response{status: resp.StatusCode, body: data}
	outcome := outcomeOK
	if !r.ok() {
		outcome = outcomeRejected
	}
	c.metrics.observe(op.resource, op.action, outcome, time.Since(start))
	log.WithFields(logrus.Fields{"status": r.status, "elapsed": time.Since(start)}).Debug("request done")
	return r, nil
}

// do sends op and decodes a 2xx body into out (skipped when out is nil).
// Non-2xx responses fail with the fallback message.
func (c *Client) do(ctx context.Context, op operation, payload, out any) error {
	resp, err := c.send(ctx, op, payload)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return rejected(op, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return &APIError{Resource: op.resource, Action: op.action, StatusCode: resp.status, Message: op.fallback, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// fetch sends op and returns the raw 2xx body for callers that normalize
// it themselves.
func (c *Client) fetch(ctx context.Context, op operation, payload any) ([]byte, error) {
	resp, err := c.send(ctx, op, payload)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, rejected(op, resp)
	}
	return resp.body, nil
}

func rejected(op operation, resp *response) *APIError {
	return &APIError{
		Resource:   op.resource,
		Action:     op.action,
		StatusCode: resp.status,
		Message:    op.fallback,
		Detail:     backendMessage(resp.body),
	}
}

// backendMessage extracts the "error" field of a JSON error body, or
// "message" when there is none
func backendMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if msg := backendError(body); msg != "" {
		return msg
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Message
}

// backendError extracts only the "error" field of a JSON error body
func backendError(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Error
}

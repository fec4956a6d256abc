package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TokenStore supplies and persists the bearer token used for authenticated
// requests. The prefs store is the production implementation.
type TokenStore interface {
	AuthToken(ctx context.Context) (string, error)
	SetAuthToken(ctx context.Context, token string) error
	ClearAuthToken(ctx context.Context) error
}

// RequestObserver is notified after every request, successful or not.
// Used to feed the local request metrics store.
type RequestObserver interface {
	ObserveRequest(method, endpoint string, statusCode int, latency time.Duration)
}

// APIError is a non-2xx response from the backend carrying the server's
// message field.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client issues authenticated requests against the Plately backend.
// It performs no retries and no backoff; failures surface directly to the
// caller to be displayed.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	observer   RequestObserver
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithObserver registers a request observer.
func WithObserver(o RequestObserver) Option {
	return func(c *Client) { c.observer = o }
}

// NewClient creates a new backend API client.
func NewClient(baseURL string, tokens TokenStore, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request issues a JSON request and decodes the response body into out when
// out is non-nil. The Authorization header is attached only when a token is
// present; it is never sent empty.
func (c *Client) request(ctx context.Context, method, endpoint string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.attachAuth(ctx, req); err != nil {
		return err
	}

	return c.do(req, endpoint, out)
}

func (c *Client) attachAuth(ctx context.Context, req *http.Request) error {
	token, err := c.tokens.AuthToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to read auth token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

func (c *Client) do(req *http.Request, endpoint string, out interface{}) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.observer != nil {
			c.observer.ObserveRequest(req.Method, endpoint, 0, time.Since(start))
		}
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	latency := time.Since(start)
	if c.observer != nil {
		c.observer.ObserveRequest(req.Method, endpoint, resp.StatusCode, latency)
	}
	c.logger.Debug("api request",
		zap.String("method", req.Method),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", latency))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseError normalizes the backend error contract: { "message": string },
// falling back to a generic message when the body has no message field.
func parseError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("request failed with status %d", resp.StatusCode),
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}

	var serverErr struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &serverErr); err == nil && serverErr.Message != "" {
		apiErr.Message = serverErr.Message
	}
	return apiErr
}

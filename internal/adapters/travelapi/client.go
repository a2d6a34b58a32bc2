package travelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"

	"go.uber.org/zap"
)

const maxErrorBody = 64 << 10

// Client talks to the remote planning service. Every call is a single
// attempt; failures are mapped onto the domain error taxonomy:
//   - transport errors and client timeouts -> *domain.NetworkError
//   - non-2xx responses -> *domain.ServiceError
//   - undecodable bodies -> *domain.DecodeError
//
// The client is safe for concurrent use.
type Client struct {
	session *http.Client
	baseURL string
	log     *zap.Logger
	cache   ports.LookupCache
}

type Option func(*Client)

// WithLookupCache caches secondary lookup responses.
func WithLookupCache(cache ports.LookupCache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.session = hc }
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("travel api: base url is empty")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}

	c := &Client{
		session: &http.Client{Timeout: timeout},
		baseURL: baseURL,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) newRequest(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	body any,
) (*http.Request, error) {
	endpoint := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		endpoint = c.baseURL + path
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do executes req and returns the response when its status is 2xx.
// The caller must close the body.
func (c *Client) do(op string, req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, &domain.ServiceError{
			Op:      op,
			Status:  resp.StatusCode,
			Message: serviceMessage(b),
		}
	}

	return resp, nil
}

// doJSON performs a request and decodes the JSON response into out.
func (c *Client) doJSON(
	ctx context.Context,
	op string,
	method string,
	path string,
	query url.Values,
	body any,
	out any,
) error {
	raw, err := c.doBytes(ctx, op, method, path, query, body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.DecodeError{Op: op, Err: err}
	}
	return nil
}

// doBytes performs a request and returns the raw response body.
func (c *Client) doBytes(
	ctx context.Context,
	op string,
	method string,
	path string,
	query url.Values,
	body any,
) ([]byte, error) {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		// The connection broke mid-body.
		return nil, &domain.NetworkError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	return raw, nil
}

// serviceMessage extracts the server's {"error": "..."} message, falling
// back to the trimmed body text.
func serviceMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(body))
}

// Available reports whether the planning service answers its health check.
func (c *Client) Available(ctx context.Context) bool {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return false
	}
	resp, err := c.do("travelapi.Available", req)
	if err != nil {
		c.log.Info("planning service unavailable", zap.Error(err))
		return false
	}
	resp.Body.Close()
	return true
}

// Package client talks to the customer service over its REST API. Every method is a single
// round trip; there is no caching and no retry, callers decide whether to try again.
package client

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

	"gitlab.com/dirk.krummacker/customer-crm/pkg/model"
	"go.uber.org/zap"
)

// Config configures the client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Headers map[string]string
}

// Client is the customer repository client.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	headers    map[string]string
	logger     *zap.Logger
}

// New creates a client for the service at cfg.BaseURL. A nil logger disables logging.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	baseURL, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	headers := map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/json",
		"User-Agent":   "customer-crm/1.0",
	}
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    baseURL,
		headers:    headers,
		logger:     logger,
	}, nil
}

// List fetches all customers. The order of the result is not part of the contract.
func (c *Client) List(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	if err := c.do(ctx, http.MethodGet, "/customers", nil, &customers); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	if customers == nil {
		customers = []model.Customer{}
	}
	return customers, nil
}

// Get fetches the customer with the given id. It fails with model.ErrNotFound if there is none.
func (c *Client) Get(ctx context.Context, id string) (*model.Customer, error) {
	if id == "" {
		return nil, fmt.Errorf("get customer: %w", model.ErrNotFound)
	}
	var customer model.Customer
	if err := c.do(ctx, http.MethodGet, customerPath(id), nil, &customer); err != nil {
		return nil, fmt.Errorf("get customer %s: %w", id, err)
	}
	return &customer, nil
}

// Create stores a new customer and returns it with the id and creation time assigned by the
// service. A rejected draft fails with a *model.ValidationError.
func (c *Client) Create(ctx context.Context, draft model.CustomerDraft) (*model.Customer, error) {
	var customer model.Customer
	if err := c.do(ctx, http.MethodPost, "/customers", draft, &customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return &customer, nil
}

// Update replaces all mutable fields of the customer with the draft.
func (c *Client) Update(ctx context.Context, id string, draft model.CustomerDraft) (*model.Customer, error) {
	if id == "" {
		return nil, fmt.Errorf("update customer: %w", model.ErrNotFound)
	}
	var customer model.Customer
	if err := c.do(ctx, http.MethodPut, customerPath(id), draft, &customer); err != nil {
		return nil, fmt.Errorf("update customer %s: %w", id, err)
	}
	return &customer, nil
}

// Delete removes the customer. It fails with model.ErrNotFound if there is none.
func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("delete customer: %w", model.ErrNotFound)
	}
	if err := c.do(ctx, http.MethodDelete, customerPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete customer %s: %w", id, err)
	}
	return nil
}

// Ping checks that the service answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func customerPath(id string) string {
	return "/customers/" + url.PathEscape(id)
}

// do executes one request and decodes the result envelope into out. Failures are translated
// into the error taxonomy of the model package.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), bodyReader)
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}
	for k, v := range c.headers {
		request.Header.Set(k, v)
	}

	start := time.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		c.logger.Warn("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %w", model.ErrUnavailable, err)
	}
	defer response.Body.Close()
	content, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response body: %w", model.ErrUnavailable, err)
	}
	c.logger.Debug("request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", response.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	var envelope model.Result[json.RawMessage]
	decodeErr := json.Unmarshal(content, &envelope)
	if response.StatusCode >= 300 {
		return statusError(response.StatusCode, envelope.Error)
	}
	if decodeErr != nil || !envelope.Success {
		return fmt.Errorf("%w: unexpected response (status %d)", model.ErrUnavailable, response.StatusCode)
	}
	if out == nil || len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: decoding response data: %w", model.ErrUnavailable, err)
	}
	return nil
}

// statusError maps a failed response onto the error taxonomy.
func statusError(status int, reason string) error {
	switch {
	case status == http.StatusNotFound:
		return model.ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return &model.ValidationError{Reason: reason}
	default:
		if reason == "" {
			reason = http.StatusText(status)
		}
		return fmt.Errorf("%w: %s (status %d)", model.ErrUnavailable, reason, status)
	}
}

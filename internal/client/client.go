package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"sigx-cli/pkg/models"
)

// SigxClient talks to the SIGx journey automation REST API.
type SigxClient struct {
	HTTP   *resty.Client
	Config ClientConfig
}

type ClientConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// APIError is returned for every non-2xx response.
// Message carries the backend's "erro" field when the body had one.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("failed to %s: %d %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("failed to %s: %d %s", e.Op, e.StatusCode, strings.TrimSpace(e.Body))
}

// ErrorMessage returns the server-provided message carried by err, or fallback
// when err holds none (network failure, malformed body, bare status).
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsNotFound reports whether err is a 404 answer from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func New(cfg ClientConfig) *SigxClient {
	r := resty.New()
	r.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/"))

	r.SetHeader("Content-Type", "application/json")
	r.SetHeader("Accept", "application/json")
	if cfg.UserAgent != "" {
		r.SetHeader("User-Agent", cfg.UserAgent)
	}
	if cfg.Timeout > 0 {
		r.SetTimeout(cfg.Timeout)
	}

	return &SigxClient{
		HTTP:   r,
		Config: cfg,
	}
}

func (c *SigxClient) request(ctx context.Context) *resty.Request {
	if ctx == nil {
		ctx = context.Background()
	}
	return c.HTTP.R().
		SetContext(ctx).
		SetError(&models.ErrorResponse{})
}

// check turns a resty round trip into the package's error contract.
func check(op string, resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if !resp.IsError() {
		return nil
	}

	apiErr := &APIError{
		Op:         op,
		StatusCode: resp.StatusCode(),
		Body:       resp.String(),
	}
	if e, ok := resp.Error().(*models.ErrorResponse); ok && e != nil {
		apiErr.Message = e.Message
	}
	if apiErr.StatusCode == 0 {
		apiErr.StatusCode = http.StatusInternalServerError
	}
	return apiErr
}

// GetStatus checks that the backend is online.
func (c *SigxClient) GetStatus(ctx context.Context) (*models.Status, error) {
	var status models.Status

	resp, err := c.request(ctx).
		SetResult(&status).
		Get("/api/status")
	if err := check("get status", resp, err); err != nil {
		return nil, err
	}

	return &status, nil
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultTimeout = 10 * time.Second

	// defaultErrorMessage is the last-resort message when the backend
	// returns neither an envelope nor a usable status.
	defaultErrorMessage = "request failed"
)

// errorEnvelope is the backend's error response shape.
type errorEnvelope struct {
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Error is a non-2xx backend response. Message follows the envelope
// precedence: envelope error (with details appended), then HTTP status
// text, then a hardcoded default.
type Error struct {
	StatusCode int
	Message    string
	Details    interface{}
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// Client talks to the forecourt backend. All state lives server-side; the
// client only shapes requests and decodes responses.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *zap.Logger
}

// New builds a client for the given base URL. An empty token sends
// unauthenticated requests; the backend decides what those may do.
func New(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := c.decodeError(resp)
		c.logger.Warn("backend returned non-success",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response) *Error {
	apiErr := &Error{StatusCode: resp.StatusCode, Message: defaultErrorMessage}

	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != "" {
		apiErr.Message = envelope.Error
		apiErr.Details = envelope.Details
		if envelope.Details != nil {
			apiErr.Message = fmt.Sprintf("%s: %v", envelope.Error, envelope.Details)
		}
		return apiErr
	}

	if text := http.StatusText(resp.StatusCode); text != "" {
		apiErr.Message = text
	}
	return apiErr
}

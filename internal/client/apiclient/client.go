package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/scholarhub/internal/client/endpoints"
	"github.com/dmitrijs2005/scholarhub/internal/client/metrics"
	"github.com/dmitrijs2005/scholarhub/internal/common"
	"github.com/dmitrijs2005/scholarhub/internal/logging"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"

	// maxMessageBody caps how much of an error body is read for a message.
	maxMessageBody = 64 << 10
)

type Client struct {
	httpClient *http.Client
	endpoints  *endpoints.Registry
	logger     logging.Logger
	metrics    metrics.Recorder
	userAgent  string
}

type Option func(*Client)

// WithTimeout bounds each request, body included. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			return
		}
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New builds a Client. A nil httpClient uses http.DefaultClient and a nil
// recorder discards metrics.
func New(httpClient *http.Client, registry *endpoints.Registry, logger logging.Logger, recorder metrics.Recorder, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	c := &Client{
		httpClient: httpClient,
		endpoints:  registry,
		logger:     logger,
		metrics:    recorder,
		userAgent:  common.AppName + "-cli/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Endpoints() *endpoints.Registry { return c.endpoints }

// Do sends req once. On a transport failure the returned error wraps
// ErrUnavailable. The caller owns the response body.
func (c *Client) Do(ctx context.Context, op string, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	requestID := uuid.NewString()
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(HeaderRequestID, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		c.metrics.RecordRequest(op, req.Method, 0, elapsed)
		c.logger.Error(ctx, "api request failed",
			"op", op,
			"method", req.Method,
			"request_id", requestID,
			"error", err,
		)
		return nil, fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}

	c.metrics.RecordRequest(op, req.Method, resp.StatusCode, elapsed)
	c.logger.Debug(ctx, "api request",
		"op", op,
		"method", req.Method,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", elapsed,
	)
	return resp, nil
}

// NewJSONRequest builds a request with body encoded as JSON. A nil body
// sends no payload.
func NewJSONRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// SetHeaders copies h onto req.
func SetHeaders(req *http.Request, h map[string]string) {
	for k, v := range h {
		req.Header.Set(k, v)
	}
}

// IsSuccess reports a 2xx status.
func IsSuccess(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// DecodeJSON decodes the response body into dst.
func DecodeJSON(resp *http.Response, dst any) error {
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ServerMessage returns the "error" field of a JSON body, or fallback when
// the body is missing, not JSON, or carries no such field.
func ServerMessage(resp *http.Response, fallback string) string {
	if resp == nil || resp.Body == nil {
		return fallback
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxMessageBody))
	if err != nil || len(b) == 0 {
		return fallback
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(b, &payload); err != nil || payload.Error == "" {
		return fallback
	}
	return payload.Error
}

// ResponseError builds an *Error for a non-2xx response, preferring the
// server's message.
func ResponseError(op string, resp *http.Response, fallback string) *Error {
	return &Error{
		Op:         op,
		StatusCode: resp.StatusCode,
		Message:    ServerMessage(resp, fallback),
	}
}

// Close drains and closes the body so the connection can be reused.
func Close(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxMessageBody))
	_ = resp.Body.Close()
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/join-helper/models"
)

const (
	DeviceStatePath = "/-net/api/v0/device/state"
	DefaultTimeout  = 10 * time.Second

	// upstream error bodies are kept for logging only
	maxErrorBody = 64 << 10
)

var ErrNoDevices = errors.New("no devices in state update")

// Client talks to the controller's device API
type Client struct {
	baseURL    string
	apiToken   string
	timeout    time.Duration
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds every controller request, including with a custom http.Client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a controller client. A trailing slash on baseURL is ignored.
func New(baseURL, apiToken string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiToken:   apiToken,
		timeout:    DefaultTimeout,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is returned when the controller responds with a non-2xx status
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("controller returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// StatusCode extracts the controller status from an *APIError anywhere in err's chain
func StatusCode(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	return 0, false
}

// AcceptDevice marks a single device as accepted
func (c *Client) AcceptDevice(ctx context.Context, id uuid.UUID) error {
	return c.SetDeviceStates(ctx, models.NewAcceptUpdate(id).Devices)
}

// SetDeviceStates sends one state update covering every given device
func (c *Client) SetDeviceStates(ctx context.Context, devices []models.DeviceState) error {
	if len(devices) == 0 {
		return ErrNoDevices
	}
	return c.do(ctx, http.MethodPost, DeviceStatePath, models.DeviceStateUpdate{Devices: devices})
}

func (c *Client) do(ctx context.Context, method, path string, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build controller request: %w", err)
	}
	// The controller expects the raw token after "Basic", not base64(user:pass)
	req.Header.Set("Authorization", "Basic "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("controller request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Body: respBytes}
	}

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	return nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/join-helper/cliparse"
	"github.com/danielhkuo/join-helper/models"
)

const (
	TestPSK      = "correct"
	TestAPIToken = "test-api-token"
	TestDeviceID = "123e4567-e89b-12d3-a456-426614174000"
)

// ControllerCall is one request received by a FakeController
type ControllerCall struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Update decodes the call body as a device state update
func (c ControllerCall) Update(t *testing.T) models.DeviceStateUpdate {
	t.Helper()
	var update models.DeviceStateUpdate
	if err := json.Unmarshal(c.Body, &update); err != nil {
		t.Fatalf("Failed to decode controller request body %q: %v", c.Body, err)
	}
	return update
}

// FakeController is an httptest server standing in for the controller API
type FakeController struct {
	Server *httptest.Server

	mu     sync.Mutex
	status int
	body   string
	delay  time.Duration
	calls  []ControllerCall
}

// NewFakeController starts a fake controller that answers 200 until told otherwise.
// The server is closed when the test ends.
func NewFakeController(t *testing.T) *FakeController {
	t.Helper()

	fc := &FakeController{status: http.StatusOK, body: `{}`}
	fc.Server = httptest.NewServer(http.HandlerFunc(fc.serve))
	t.Cleanup(fc.Server.Close)
	return fc
}

func (fc *FakeController) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	fc.mu.Lock()
	fc.calls = append(fc.calls, ControllerCall{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   body,
	})
	status, respBody, delay := fc.status, fc.body, fc.delay
	fc.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(respBody))
}

// URL is the base URL to configure as BOWTIE_CONTROLLER_URL
func (fc *FakeController) URL() string {
	return fc.Server.URL
}

// Respond sets the status and body returned for subsequent calls
func (fc *FakeController) Respond(status int, body string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.status = status
	fc.body = body
}

// Delay makes subsequent calls wait d before answering
func (fc *FakeController) Delay(d time.Duration) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.delay = d
}

// Calls returns a copy of every request received so far
func (fc *FakeController) Calls() []ControllerCall {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return append([]ControllerCall(nil), fc.calls...)
}

// GetTestConfig returns a standard test configuration pointing at controllerURL
func GetTestConfig(controllerURL string) cliparse.Config {
	return cliparse.Config{
		Port:              8080,
		HelperPSK:         TestPSK,
		APIToken:          TestAPIToken,
		ControllerURL:     controllerURL,
		ControllerTimeout: 2 * time.Second,
	}
}

// JoinBody returns a JSON join request body
func JoinBody(deviceID, psk string) []byte {
	b, _ := json.Marshal(map[string]string{
		"device_id":  deviceID,
		"helper_psk": psk,
	})
	return b
}

// MakeRequest creates an HTTP test request with a raw body
func MakeRequest(method, path string, body []byte, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertErrorBody checks for the exact JSON error body returned to callers
func AssertErrorBody(t *testing.T, w *httptest.ResponseRecorder, message string) {
	t.Helper()
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %q", ct)
	}
	expected, _ := json.Marshal(models.ErrorResponse{Error: message})
	if w.Body.String() != string(expected) {
		t.Errorf("Expected body %s, got %s", expected, w.Body.String())
	}
}

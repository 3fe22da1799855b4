// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Device state constants
const (
	DeviceStateAccepted = "accepted"
)

// Error messages returned to the caller
const (
	MsgInvalidRequestBody = "Invalid request body"
	MsgInvalidHelperPSK   = "Invalid helper_psk"
	MsgFailedToJoinDevice = "Failed to join device"
)

var ErrInvalidRequest = errors.New("invalid join request")

// Request types

type JoinRequest struct {
	DeviceID  uuid.UUID `json:"device_id"`
	HelperPSK string    `json:"helper_psk"`
}

// LogValue keeps the helper_psk out of log output
func (r JoinRequest) LogValue() slog.Value {
	return slog.GroupValue(slog.String("device_id", r.DeviceID.String()))
}

// ParseJoinRequest decodes a raw request body into a JoinRequest.
// The body must be valid UTF-8 holding exactly one JSON object. Field names
// match exactly, both fields are required and may appear only once, and JSON
// null counts as missing. Unknown fields are ignored. Unpaired UTF-16
// surrogate escapes are rejected rather than replaced. Any failure wraps
// ErrInvalidRequest.
func ParseJoinRequest(body []byte) (JoinRequest, error) {
	if !utf8.Valid(body) {
		return JoinRequest{}, fmt.Errorf("%w: body is not valid UTF-8", ErrInvalidRequest)
	}
	if err := checkSurrogates(body); err != nil {
		return JoinRequest{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	fields, err := decodeObject(body)
	if err != nil {
		return JoinRequest{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	var req JoinRequest
	if err := decodeField(fields, "device_id", &req.DeviceID); err != nil {
		return JoinRequest{}, err
	}
	if err := decodeField(fields, "helper_psk", &req.HelperPSK); err != nil {
		return JoinRequest{}, err
	}
	return req, nil
}

var joinRequestFields = map[string]bool{"device_id": true, "helper_psk": true}

// decodeObject walks a single top-level JSON object and returns its raw
// members. A repeated device_id or helper_psk is an error.
func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("body is not a JSON object")
	}

	fields := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.New("object key is not a string")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		if _, seen := fields[key]; seen && joinRequestFields[key] {
			return nil, fmt.Errorf("duplicate field %s", key)
		}
		fields[key] = raw
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after JSON object")
	}
	return fields, nil
}

// checkSurrogates rejects \uXXXX escapes that leave a UTF-16 surrogate unpaired
func checkSurrogates(body []byte) error {
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' || i+1 >= len(body) {
			continue
		}
		if body[i+1] != 'u' {
			i++ // skip the escaped character, which may itself be a backslash
			continue
		}
		r, ok := hexRune(body, i+2)
		if !ok {
			// malformed escape; the decoder reports it
			i++
			continue
		}
		i += 5
		switch {
		case r >= 0xDC00 && r <= 0xDFFF:
			return errors.New("unpaired surrogate escape")
		case r >= 0xD800 && r <= 0xDBFF:
			if i+2 >= len(body) || body[i+1] != '\\' || body[i+2] != 'u' {
				return errors.New("unpaired surrogate escape")
			}
			low, ok := hexRune(body, i+3)
			if !ok || low < 0xDC00 || low > 0xDFFF {
				return errors.New("unpaired surrogate escape")
			}
			i += 6
		}
	}
	return nil
}

func hexRune(b []byte, at int) (rune, bool) {
	if at+4 > len(b) {
		return 0, false
	}
	var r rune
	for _, c := range b[at : at+4] {
		switch {
		case c >= '0' && c <= '9':
			r = r<<4 | rune(c-'0')
		case c >= 'a' && c <= 'f':
			r = r<<4 | rune(c-'a'+10)
		case c >= 'A' && c <= 'F':
			r = r<<4 | rune(c-'A'+10)
		default:
			return 0, false
		}
	}
	return r, true
}

func decodeField(fields map[string]json.RawMessage, name string, v any) error {
	raw, ok := fields[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fmt.Errorf("%w: %s is required", ErrInvalidRequest, name)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidRequest, name, err)
	}
	return nil
}

// Controller payload types

type DeviceState struct {
	ID    string `json:"id"`
	State string `json:"state"`
}

type DeviceStateUpdate struct {
	Devices []DeviceState `json:"devices"`
}

// NewAcceptUpdate builds the single-device update that marks id as accepted
func NewAcceptUpdate(id uuid.UUID) DeviceStateUpdate {
	return DeviceStateUpdate{
		Devices: []DeviceState{{ID: id.String(), State: DeviceStateAccepted}},
	}
}

// Response types

type ErrorResponse struct {
	Error string `json:"error"`
}

// Response is a transport-neutral reply to the join caller
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// NewErrorResponse builds a compact {"error": message} JSON response
func NewErrorResponse(statusCode int, message string) Response {
	body, _ := json.Marshal(ErrorResponse{Error: message})
	return Response{
		StatusCode:  statusCode,
		ContentType: "application/json",
		Body:        body,
	}
}

// NewAcceptedResponse is the reply sent once the controller accepted the device
func NewAcceptedResponse() Response {
	return Response{
		StatusCode:  http.StatusOK,
		ContentType: "text/html",
		Body:        []byte("Device Accepted\n"),
	}
}

// BodyAllowed reports whether HTTP permits a body with the response status.
// 1xx, 204 and 304 responses must not carry one.
func (r Response) BodyAllowed() bool {
	switch {
	case r.StatusCode >= 100 && r.StatusCode < 200:
		return false
	case r.StatusCode == http.StatusNoContent, r.StatusCode == http.StatusNotModified:
		return false
	}
	return true
}

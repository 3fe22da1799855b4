// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, payload, and error types for the join helper.

# Request Types

JoinRequest is the inbound webhook body:

	{"device_id": "123e4567-e89b-12d3-a456-426614174000", "helper_psk": "..."}

ParseJoinRequest decodes it all-or-nothing. Both fields must be present and
non-null, device_id must parse as a UUID, and helper_psk must be a string.
Every failure wraps ErrInvalidRequest:

	req, err := models.ParseJoinRequest(body)
	if errors.Is(err, models.ErrInvalidRequest) {
		// 400 Invalid request body
	}

# Controller Payload

DeviceStateUpdate is the body sent to the controller's device state API:

  - DeviceStateUpdate: devices ([]DeviceState)
  - DeviceState: id, state

NewAcceptUpdate builds the single-device "accepted" update.

# Error Response

ErrorResponse is the JSON error body returned to callers:

	{"error": "Invalid helper_psk"}

# Constants

Device state:

	DeviceStateAccepted = "accepted"

Caller-facing error messages:

	MsgInvalidRequestBody = "Invalid request body"
	MsgInvalidHelperPSK   = "Invalid helper_psk"
	MsgFailedToJoinDevice = "Failed to join device"
*/
package models

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package controller is a client for the controller's device state API.

	client := controller.New(cfg.ControllerURL, cfg.APIToken,
		controller.WithTimeout(cfg.ControllerTimeout))
	err := client.AcceptDevice(ctx, deviceID)

Requests go to POST {base}/-net/api/v0/device/state with the header
"Authorization: Basic <token>". The raw token follows the scheme name; this
is what the controller expects, not a base64 user:pass pair.

A non-2xx answer is returned as *APIError carrying the status code. Network
failures and timeouts are returned wrapped and never retried.
*/
package controller

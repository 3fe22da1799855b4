// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the join request handler.

# JoinHandler

JoinHandler validates a join request and forwards it to the controller.
It is created with the configuration, a DeviceAcceptor and a logger:

	client := controller.New(cfg.ControllerURL, cfg.APIToken)
	joinHandler := handlers.NewJoinHandler(cfg, client, slog.Default())

# Flow

Every request runs the same linear sequence:

	parse body     → 400 {"error":"Invalid request body"}
	check psk      → 403 {"error":"Invalid helper_psk"}
	accept device  → controller status {"error":"Failed to join device"}
	               → 200 text/html "Device Accepted\n"

Handle implements the sequence on raw bytes and returns a models.Response,
so any transport can use it. Join is the net/http form used by the router;
lambdafn wraps Handle for AWS Lambda.

# Controller Failures

A non-2xx controller answer is relayed with the controller's status code and
a generic body; upstream error details are never passed back. If the
controller cannot be reached at all, Handle returns an error instead of a
Response and Join answers 502. There are no retries.
*/
package handlers

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the join helper server.

# Route Registration

NewRouter creates a configured http.ServeMux:

	mux := router.NewRouter(joinHandler)

# Endpoints

Health:

	GET /health - {"status":"ok"}

Join webhook (every other method and path):

	ANY /... - Validate helper_psk and accept the device on the controller

Only the request body is inspected, so callers may post to whatever path
their load balancer or function URL exposes. Join requests are logged with
middleware.WithLogging.
*/
package router

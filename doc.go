// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the join helper.

The join helper is a webhook that approves devices waiting to join a
controller-managed network. A caller posts the device UUID together with a
pre-shared key; if the key matches, the helper tells the controller to mark
the device as accepted and relays the outcome.

# Request

	POST / HTTP/1.1
	Content-Type: application/json

	{"device_id": "123e4567-e89b-12d3-a456-426614174000", "helper_psk": "..."}

Responses:

  - 200 text/html "Device Accepted\n"
  - 400 {"error":"Invalid request body"}
  - 403 {"error":"Invalid helper_psk"}
  - controller status {"error":"Failed to join device"}

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	JOIN_HELPER_PSK=... BOWTIE_API_TOKEN=... BOWTIE_CONTROLLER_URL=https://... go run .

Or with flags:

	go run . -p 8080 -psk ... -token ... -controller-url https://...

A .env file in the working directory is loaded first when present.

# AWS Lambda

When AWS_LAMBDA_RUNTIME_API is set the binary serves Lambda function URL
events instead of listening on a port, and logs JSON for CloudWatch.

# Configuration

Required settings:

  - JOIN_HELPER_PSK (-psk): Shared secret expected in helper_psk
  - BOWTIE_API_TOKEN (-token): Controller API token
  - BOWTIE_CONTROLLER_URL (-controller-url): Controller base URL

Optional settings:

  - PORT (-p): Server port (default: 8080)
  - BOWTIE_CONTROLLER_TIMEOUT (-controller-timeout): Controller call bound (default: 10s)
  - LOG_FORMAT (-log-format), LOG_LEVEL (-log-level)

The process exits with status 1 before serving anything if a required
setting is missing.

# Architecture

  - handlers: JoinHandler, the validate-and-forward logic
  - controller: Controller device state API client
  - lambdafn: Lambda function URL adapter
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, response writers, body reading
  - models: Request, payload and response types
  - auth: Pre-shared key comparison
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

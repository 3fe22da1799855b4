// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status, duration_ms).

# Response Helpers

Write responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusForbidden, models.MsgInvalidHelperPSK)
	middleware.WriteResponse(w, models.NewAcceptedResponse())

JSON bodies are written compact with no trailing newline, so error bodies
are exactly {"error":"..."}.

# Request Bodies

Read the raw body with a size cap:

	body, err := middleware.ReadBody(w, r, middleware.MaxBodyBytes)

Bodies over the limit return ErrBodyTooLarge.

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/join-helper/handlers"
	"github.com/danielhkuo/join-helper/middleware"
)

func NewRouter(joinHandler *handlers.JoinHandler) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Join webhook: any method, any path; only the body matters
	mux.HandleFunc("/", middleware.WithLogging(joinHandler.Join))

	return mux
}

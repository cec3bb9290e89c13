// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms). Every request gets an X-Request-ID; an incoming one is kept
only if it is a UUID.

# Tracing and Metrics

	h := middleware.WithTracing(route, middleware.WithMetrics(m, route, handler))

WithTracing opens a server span named after the route pattern. WithMetrics
observes latency labelled by route pattern, method and status.

# Admin Key

	mux.HandleFunc("GET /admin/questions", middleware.RequireAdminKey(cfg.AdminKey, h))

Requests without a matching X-Admin-Key get 401.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Admin-Key.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var input models.QuestionInput
	if err := middleware.ParseJSONBody(r, &input); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)
*/
package middleware

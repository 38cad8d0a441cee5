// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging and Metrics

Wrap handlers with request logging and Prometheus instrumentation:

	mux.HandleFunc("GET /boards/{id}", middleware.WithLogging(middleware.WithMetrics(handler)))

Logging records request start (method, path, remote) and completion
(status, duration_ms). Metrics are labelled by the matched route pattern.

# Sessions

Board routes require a session token issued at login:

	mux.HandleFunc("GET /boards/{id}", middleware.RequireSession(secret, userService, handler))

The token is read from "Authorization: Bearer <token>". WebSocket upgrade
requests may pass it as ?token= instead. The resolver looks the user ID up
in the store; tokens for unknown accounts get 401. Handlers read the caller with
SessionFrom(r.Context()).

# Rate Limiting

RateLimiter keeps a token bucket per client, keyed by the salted hash of the
connection's remote address. Forwarding headers are only honoured when the
limiter is told it sits behind a trusted proxy. Rejected requests get 429 with a Retry-After header.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.WriteError(w, r, err)

Errors are always {"error": "..."}. WriteError derives the status from the
apperr kind and hides the text of unexpected errors.

Parse and validate JSON request bodies:

	var req models.CreateItemRequest
	if err := middleware.DecodeRequest(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
*/
package middleware

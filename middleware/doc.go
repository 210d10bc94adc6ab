// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /results", middleware.WithLogging(handler))

Each request gets an id (the incoming X-Request-ID, or a new UUID). It is
echoed in the X-Request-ID response header and available to handlers:

	slog.Info("survey exported", "request_id", middleware.RequestID(r.Context()))

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Content-Disposition is exposed so browser clients can read the CSV file name.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP before falling back to RemoteAddr.
*/
package middleware

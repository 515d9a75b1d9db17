// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

WithLogging is chi-compatible and logs method, path, status, bytes,
duration_ms and the chi request id once the handler returns:

	r.Use(chimw.RequestID, middleware.WithLogging)

# Owner Authentication

RequireOwner checks the bearer token and stores the owner id in the context:

	r.With(middleware.RequireOwner(cfg.TokenSecret)).Get("/surveys", h.List)

	ownerID := middleware.OwnerID(r.Context())

# JSON Helpers

	middleware.JSONResponse(w, r, http.StatusOK, data)

	var req models.SubmitRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

WriteError maps apperr kinds to status codes and a stable code string, and
translates the message according to Accept-Language.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Checks X-Forwarded-For, then X-Real-IP, then RemoteAddr. Feeds the respondent
fingerprint.
*/
package middleware

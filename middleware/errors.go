// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/locale"
)

// WriteError renders err as a JSON error in the caller's language. Errors
// without a kind are reported as 500 with no detail.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := apperr.As(err)
	if !ok {
		slog.Error("unhandled error",
			"path", r.URL.Path,
			"request_id", chimw.GetReqID(r.Context()),
			"error", err,
		)
		ErrorResponse(w, r, http.StatusInternalServerError, "internal_error", http.StatusText(http.StatusInternalServerError))
		return
	}

	status := e.Status()
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"path", r.URL.Path,
			"request_id", chimw.GetReqID(r.Context()),
			"op", e.Op,
			"error", e.Err,
		)
	}

	ErrorResponse(w, r, status, e.Code(), locale.Message(locale.Printer(r), e))
}

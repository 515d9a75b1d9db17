// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-survey/service"
	"github.com/danielhkuo/quickly-survey/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := testutil.GetTestConfig()
	return NewRouter(service.New(testutil.SetupTestStore(t), cfg.DefaultSurveyTTL, cfg.DuplicateWindow), cfg)
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "quickly-survey API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestRouter(t)

	// Requests without a body or token still reach the route; the status
	// proves the route is registered and says who rejected the request.
	routes := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/surveys/public", http.StatusOK},
		{"POST", "/surveys", http.StatusUnauthorized},
		{"GET", "/surveys", http.StatusUnauthorized},
		{"GET", "/surveys/abc", http.StatusUnauthorized},
		{"DELETE", "/surveys/abc", http.StatusUnauthorized},
		{"PATCH", "/surveys/abc/status", http.StatusUnauthorized},
		{"PUT", "/surveys/abc/questions", http.StatusUnauthorized},
		{"GET", "/surveys/abc/submissions", http.StatusUnauthorized},
		{"POST", "/surveys/abc/share-links", http.StatusUnauthorized},
		{"GET", "/surveys/abc/share-links", http.StatusUnauthorized},
		{"GET", "/surveys/abc/public", http.StatusNotFound},
		{"GET", "/surveys/abc/preview", http.StatusNotFound},
		{"GET", "/surveys/abc/submissions/check", http.StatusOK},
		{"POST", "/surveys/abc/submissions", http.StatusBadRequest},
		{"GET", "/share/unknown-token", http.StatusNotFound},
		{"DELETE", "/share-links/abc", http.StatusUnauthorized},
		{"GET", "/surveys/name/Lunch", http.StatusUnauthorized},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != route.want {
				t.Errorf("Expected status %d, got %d. Body: %s", route.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	mux := newTestRouter(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/polls", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestRouter(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("POST", "/health", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/surveys", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Expected origin echoed, got %q", got)
	}
}

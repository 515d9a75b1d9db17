// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/router"
	"github.com/danielhkuo/quickly-survey/service"
	"github.com/danielhkuo/quickly-survey/testutil"
)

func newServer(t *testing.T) (http.Handler, *db.Store) {
	t.Helper()
	store := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	svc := service.New(store, cfg.DefaultSurveyTTL, cfg.DuplicateWindow)
	return router.NewRouter(svc, cfg), store
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var body models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode error body: %v (%s)", err, w.Body.String())
	}
	return body
}

func answersFor(q models.Question, responses ...string) []models.AnswerInput {
	out := make([]models.AnswerInput, len(responses))
	for i, r := range responses {
		out[i] = models.AnswerInput{QuestionID: q.ID, Response: r}
	}
	return out
}

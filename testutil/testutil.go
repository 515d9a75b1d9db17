// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-survey/auth"
	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/models"
)

// TestTokenSecret signs owner tokens in tests.
const TestTokenSecret = "test-owner-token-secret"

// SetupTestStore opens a migrated SQLite store in a fresh temp directory.
// It is closed when the test ends.
func SetupTestStore(t *testing.T) *db.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "survey.db")
	store, err := db.Open(context.Background(), db.DriverSQLite, "file:"+path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseURL:      "file::memory:",
		DatabaseType:     db.DriverSQLite,
		TokenSecret:      TestTokenSecret,
		DuplicateWindow:  30 * 24 * time.Hour,
		DefaultSurveyTTL: 30 * 24 * time.Hour,
	}
}

// OwnerToken issues a bearer token for ownerID.
func OwnerToken(t *testing.T, ownerID string) string {
	t.Helper()

	token, err := auth.IssueOwnerToken(ownerID, TestTokenSecret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue owner token: %v", err)
	}
	return token
}

// SurveyOption customizes a survey before CreateTestSurvey stores it.
type SurveyOption func(*models.Survey)

func WithStatus(status string) SurveyOption {
	return func(s *models.Survey) { s.Status = status }
}

func WithExpiry(at time.Time) SurveyOption {
	return func(s *models.Survey) { s.ExpiresAt = at.UTC() }
}

func WithoutDuplicatePrevention() SurveyOption {
	return func(s *models.Survey) { s.PreventDuplicates = false }
}

// WithQuestion appends a question; its position is the next free one.
func WithQuestion(answerType, content string, choices ...string) SurveyOption {
	return func(s *models.Survey) {
		q := models.Question{
			ID:         uuid.NewString(),
			SurveyID:   s.ID,
			Position:   len(s.Questions),
			Content:    content,
			AnswerType: answerType,
			Choices:    []models.Choice{},
		}
		for i, c := range choices {
			q.Choices = append(q.Choices, models.Choice{
				ID:         uuid.NewString(),
				QuestionID: q.ID,
				Position:   i,
				Content:    c,
			})
		}
		s.Questions = append(s.Questions, q)
	}
}

// CreateTestSurvey stores a public survey owned by ownerID that expires in a
// day, with duplicate prevention on, and returns it with its questions.
func CreateTestSurvey(t *testing.T, store *db.Store, ownerID string, opts ...SurveyOption) models.Survey {
	t.Helper()

	now := time.Now().UTC()
	s := models.Survey{
		ID:                uuid.NewString(),
		OwnerID:           ownerID,
		Name:              "Test Survey",
		Status:            models.StatusPublic,
		PreventDuplicates: true,
		CreatedAt:         now,
		ExpiresAt:         now.Add(24 * time.Hour),
		LastUpdated:       now,
		Questions:         []models.Question{},
	}
	for _, opt := range opts {
		opt(&s)
	}

	err := store.WithTx(context.Background(), "create test survey", func(q *db.Queries) error {
		if err := q.InsertSurvey(context.Background(), s); err != nil {
			return err
		}
		return q.ReplaceQuestions(context.Background(), s.ID, s.Questions)
	})
	if err != nil {
		t.Fatalf("Failed to create test survey: %v", err)
	}

	return s
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// Bearer returns an Authorization header map for token.
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

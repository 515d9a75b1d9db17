package integrity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/models"
)

// memStore is an in-memory FingerprintStore that counts lookups.
type memStore struct {
	records []models.SubmissionFingerprint
	lookups int
	err     error
}

func (m *memStore) FingerprintExists(_ context.Context, surveyID, hash string, since time.Time) (bool, error) {
	m.lookups++
	if m.err != nil {
		return false, m.err
	}
	for _, r := range m.records {
		if r.SurveyID == surveyID && r.FingerprintHash == hash && r.SubmittedAt.After(since) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) InsertFingerprint(_ context.Context, fp models.SubmissionFingerprint) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, fp)
	return nil
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestGuardPreventDuplicatesDisabled(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	guard := NewGuard(0, nil)
	survey := models.Survey{ID: "s1", PreventDuplicates: false}
	signals := Signals{IP: "10.0.0.1", UserAgent: "test"}

	for i := 0; i < 3; i++ {
		if err := guard.EnforceAndRecord(ctx, store, survey, signals); err != nil {
			t.Fatalf("Attempt %d: unexpected error: %v", i, err)
		}
		dup, err := guard.AlreadySubmitted(ctx, store, survey, signals)
		if err != nil {
			t.Fatalf("Attempt %d: unexpected error: %v", i, err)
		}
		if dup {
			t.Errorf("Attempt %d: expected not duplicate", i)
		}
	}

	if store.lookups != 0 {
		t.Errorf("Expected no store lookups, got %d", store.lookups)
	}
	if len(store.records) != 0 {
		t.Errorf("Expected no fingerprints recorded, got %d", len(store.records))
	}
}

func TestGuardRejectsSecondSubmission(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	clock := &fakeClock{t: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	guard := NewGuard(0, clock.Now)
	survey := models.Survey{ID: "s1", PreventDuplicates: true}
	signals := Signals{IP: "10.0.0.1", UserAgent: "test"}

	if err := guard.EnforceAndRecord(ctx, store, survey, signals); err != nil {
		t.Fatalf("First submission rejected: %v", err)
	}

	dup, err := guard.AlreadySubmitted(ctx, store, survey, signals)
	if err != nil {
		t.Fatal(err)
	}
	if !dup {
		t.Error("Expected AlreadySubmitted after recording")
	}

	clock.t = clock.t.Add(29 * 24 * time.Hour)
	err = guard.EnforceAndRecord(ctx, store, survey, signals)
	if !apperr.Is(err, apperr.KindDuplicate) {
		t.Errorf("Expected duplicate error inside window, got %v", err)
	}

	if len(store.records) != 1 {
		t.Errorf("Expected 1 fingerprint, got %d", len(store.records))
	}
	if store.records[0].FingerprintHash != Fingerprint(Signals{IP: "10.0.0.1", UserAgent: "test", SurveyID: "s1"}) {
		t.Error("Recorded hash does not match the survey-scoped fingerprint")
	}
}

func TestGuardWindowExpires(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	clock := &fakeClock{t: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	guard := NewGuard(0, clock.Now)
	survey := models.Survey{ID: "s1", PreventDuplicates: true}
	signals := Signals{IP: "10.0.0.1", UserAgent: "test"}

	if err := guard.EnforceAndRecord(ctx, store, survey, signals); err != nil {
		t.Fatal(err)
	}

	clock.t = clock.t.Add(DefaultWindow + time.Minute)
	if err := guard.EnforceAndRecord(ctx, store, survey, signals); err != nil {
		t.Errorf("Expected submission after window to pass, got %v", err)
	}
}

func TestGuardScopesBySurvey(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	guard := NewGuard(time.Hour, nil)
	signals := Signals{IP: "10.0.0.1", UserAgent: "test"}

	for _, id := range []string{"s1", "s2"} {
		survey := models.Survey{ID: id, PreventDuplicates: true}
		if err := guard.EnforceAndRecord(ctx, store, survey, signals); err != nil {
			t.Errorf("Survey %s: unexpected error %v", id, err)
		}
	}
}

func TestGuardPropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("connection reset")
	store := &memStore{err: storeErr}
	guard := NewGuard(0, nil)
	survey := models.Survey{ID: "s1", PreventDuplicates: true}

	err := guard.EnforceAndRecord(context.Background(), store, survey, Signals{})
	if !errors.Is(err, storeErr) {
		t.Errorf("Expected store error, got %v", err)
	}
	if apperr.Is(err, apperr.KindDuplicate) {
		t.Error("Store failure must not be reported as a duplicate")
	}
}

func TestNewGuardDefaults(t *testing.T) {
	if w := NewGuard(0, nil).Window(); w != DefaultWindow {
		t.Errorf("Expected default window %v, got %v", DefaultWindow, w)
	}
	if w := NewGuard(2*time.Hour, nil).Window(); w != 2*time.Hour {
		t.Errorf("Expected 2h window, got %v", w)
	}
}

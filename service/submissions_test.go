// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/integrity"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/testutil"
)

func newSubmissionService(t *testing.T) (*SubmissionService, *db.Store) {
	t.Helper()
	store := testutil.SetupTestStore(t)
	return NewSubmissionService(store, integrity.NewGate(nil), integrity.NewGuard(0, nil)), store
}

var browser = integrity.Signals{IP: "203.0.113.9", UserAgent: "Mozilla/5.0"}

func TestSubmitLocksOnFirstSubmission(t *testing.T) {
	svc, store := newSubmissionService(t)
	ctx := context.Background()
	survey := testutil.CreateTestSurvey(t, store, "owner-1",
		testutil.WithoutDuplicatePrevention(),
		testutil.WithQuestion(models.AnswerOpen, "Why?"),
	)
	answers := []models.AnswerInput{{QuestionID: survey.Questions[0].ID, Response: "because"}}

	sub, err := svc.Submit(ctx, survey.ID, answers, browser)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if sub.ID == "" || len(sub.Answers) != 1 || sub.Answers[0].SubmissionID != sub.ID {
		t.Errorf("Unexpected submission: %+v", sub)
	}

	got, _ := store.Queries().GetSurvey(ctx, survey.ID)
	if got.SubmissionCount != 1 || !got.IsLocked || got.LockedAt == nil {
		t.Fatalf("After first submission: count=%d locked=%v locked_at=%v", got.SubmissionCount, got.IsLocked, got.LockedAt)
	}
	lockedAt := *got.LockedAt

	if _, err := svc.Submit(ctx, survey.ID, answers, browser); err != nil {
		t.Fatalf("Second Submit() error = %v", err)
	}
	got, _ = store.Queries().GetSurvey(ctx, survey.ID)
	if got.SubmissionCount != 2 || !got.IsLocked {
		t.Errorf("After second submission: count=%d locked=%v", got.SubmissionCount, got.IsLocked)
	}
	if got.LockedAt == nil || !got.LockedAt.Equal(lockedAt) {
		t.Errorf("locked_at changed from %v to %v", lockedAt, got.LockedAt)
	}
}

func TestSubmitRejectsDuplicate(t *testing.T) {
	svc, store := newSubmissionService(t)
	ctx := context.Background()
	survey := testutil.CreateTestSurvey(t, store, "owner-1")

	dup, err := svc.CheckDuplicate(ctx, survey.ID, browser)
	if err != nil || dup {
		t.Fatalf("CheckDuplicate() before submitting = %v, %v", dup, err)
	}

	if _, err := svc.Submit(ctx, survey.ID, nil, browser); err != nil {
		t.Fatalf("First Submit() error = %v", err)
	}

	dup, err = svc.CheckDuplicate(ctx, survey.ID, browser)
	if err != nil || !dup {
		t.Errorf("CheckDuplicate() after submitting = %v, %v", dup, err)
	}

	_, err = svc.Submit(ctx, survey.ID, nil, browser)
	if !apperr.Is(err, apperr.KindDuplicate) {
		t.Fatalf("Expected duplicate, got %v", err)
	}

	// A rejected submission leaves nothing behind.
	got, _ := store.Queries().GetSurvey(ctx, survey.ID)
	if got.SubmissionCount != 1 {
		t.Errorf("Expected count 1, got %d", got.SubmissionCount)
	}

	// Another browser is a different respondent.
	other := integrity.Signals{IP: browser.IP, UserAgent: "curl/8.0"}
	if _, err := svc.Submit(ctx, survey.ID, nil, other); err != nil {
		t.Errorf("Submit() from other respondent error = %v", err)
	}
}

func TestCheckDuplicateWithoutPrevention(t *testing.T) {
	svc, store := newSubmissionService(t)
	ctx := context.Background()
	survey := testutil.CreateTestSurvey(t, store, "owner-1", testutil.WithoutDuplicatePrevention())

	for i := 0; i < 3; i++ {
		if _, err := svc.Submit(ctx, survey.ID, nil, browser); err != nil {
			t.Fatalf("Submit #%d error = %v", i+1, err)
		}
		dup, err := svc.CheckDuplicate(ctx, survey.ID, browser)
		if err != nil || dup {
			t.Errorf("CheckDuplicate() #%d = %v, %v", i+1, dup, err)
		}
	}
}

func TestCheckDuplicateUnknownSurvey(t *testing.T) {
	svc, _ := newSubmissionService(t)

	dup, err := svc.CheckDuplicate(context.Background(), "missing", browser)
	if err != nil || dup {
		t.Errorf("CheckDuplicate() on unknown survey = %v, %v", dup, err)
	}
}

func TestSubmitErrors(t *testing.T) {
	svc, store := newSubmissionService(t)
	ctx := context.Background()
	past := time.Now().UTC().Add(-time.Minute)

	overduePublic := testutil.CreateTestSurvey(t, store, "o", testutil.WithExpiry(past))
	overduePrivate := testutil.CreateTestSurvey(t, store, "o", testutil.WithExpiry(past), testutil.WithStatus(models.StatusPrivate))
	expired := testutil.CreateTestSurvey(t, store, "o", testutil.WithStatus(models.StatusExpired))
	open := testutil.CreateTestSurvey(t, store, "o", testutil.WithoutDuplicatePrevention(),
		testutil.WithQuestion(models.AnswerOpen, "Name?"))
	closeQ := testutil.CreateTestSurvey(t, store, "o", testutil.WithoutDuplicatePrevention(),
		testutil.WithQuestion(models.AnswerClose, "Pick", "A"))

	tests := []struct {
		name     string
		surveyID string
		answers  []models.AnswerInput
		want     apperr.Kind
	}{
		{"unknown survey", "missing", nil, apperr.KindNotFound},
		{"overdue public survey", overduePublic.ID, nil, apperr.KindGone},
		{"overdue private survey", overduePrivate.ID, nil, apperr.KindGone},
		{"expired survey", expired.ID, nil, apperr.KindGone},
		{"no answers to open question", open.ID, []models.AnswerInput{}, apperr.KindValidation},
		{"choice outside the set", closeQ.ID, []models.AnswerInput{{QuestionID: closeQ.Questions[0].ID, Response: "B"}}, apperr.KindStaleSchema},
		{"removed question", open.ID, []models.AnswerInput{{QuestionID: "gone", Response: "x"}}, apperr.KindStaleSchema},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, tt.surveyID, tt.answers, browser)
			if !apperr.Is(err, tt.want) {
				t.Errorf("Submit() error = %v, want kind %d", err, tt.want)
			}
		})
	}

	for _, id := range []string{overduePublic.ID, open.ID, closeQ.ID} {
		got, _ := store.Queries().GetSurvey(ctx, id)
		if got.SubmissionCount != 0 || got.IsLocked {
			t.Errorf("Survey %s changed after rejected submissions: count=%d locked=%v", id, got.SubmissionCount, got.IsLocked)
		}
	}
}

func TestSubmitRejectedAfterValidationLeavesNoFingerprint(t *testing.T) {
	svc, store := newSubmissionService(t)
	ctx := context.Background()
	survey := testutil.CreateTestSurvey(t, store, "owner-1",
		testutil.WithQuestion(models.AnswerOpen, "Name?"))

	if _, err := svc.Submit(ctx, survey.ID, nil, browser); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("Expected validation error, got %v", err)
	}

	// The respondent can fix the answers and try again.
	answers := []models.AnswerInput{{QuestionID: survey.Questions[0].ID, Response: "Ada"}}
	if _, err := svc.Submit(ctx, survey.ID, answers, browser); err != nil {
		t.Errorf("Retry after validation failure rejected: %v", err)
	}
}

func TestListSubmissions(t *testing.T) {
	svc, store := newSubmissionService(t)
	ctx := context.Background()
	survey := testutil.CreateTestSurvey(t, store, "owner-1", testutil.WithoutDuplicatePrevention(),
		testutil.WithQuestion(models.AnswerMultiple, "Pick", "A", "B", "C"))
	qid := survey.Questions[0].ID

	for _, picks := range [][]string{{"A"}, {"B", "C"}} {
		var answers []models.AnswerInput
		for _, p := range picks {
			answers = append(answers, models.AnswerInput{QuestionID: qid, Response: p})
		}
		if _, err := svc.Submit(ctx, survey.ID, answers, browser); err != nil {
			t.Fatal(err)
		}
	}

	subs, err := svc.ListSubmissions(ctx, survey.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 2 {
		t.Fatalf("Expected 2 submissions, got %d", len(subs))
	}
	total := len(subs[0].Answers) + len(subs[1].Answers)
	if total != 3 {
		t.Errorf("Expected 3 answers in total, got %d", total)
	}

	if _, err := svc.ListSubmissions(ctx, "missing"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("Expected not found, got %v", err)
	}
}

func TestConcurrentSubmissionsSameRespondent(t *testing.T) {
	svc, store := newSubmissionService(t)
	ctx := context.Background()
	survey := testutil.CreateTestSurvey(t, store, "owner-1")

	const n = 10
	var wg sync.WaitGroup
	var accepted, duplicates atomic.Int32

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Submit(ctx, survey.ID, nil, browser)
			switch {
			case err == nil:
				accepted.Add(1)
			case apperr.Is(err, apperr.KindDuplicate):
				duplicates.Add(1)
			default:
				t.Errorf("Unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if accepted.Load() != 1 || duplicates.Load() != n-1 {
		t.Errorf("Expected 1 accepted and %d duplicates, got %d and %d", n-1, accepted.Load(), duplicates.Load())
	}

	got, _ := store.Queries().GetSurvey(ctx, survey.ID)
	if got.SubmissionCount != 1 {
		t.Errorf("Expected count 1, got %d", got.SubmissionCount)
	}
}

func TestConcurrentSubmissionsDistinctRespondents(t *testing.T) {
	svc, store := newSubmissionService(t)
	ctx := context.Background()
	survey := testutil.CreateTestSurvey(t, store, "owner-1")

	const n = 10
	var wg sync.WaitGroup
	var failures atomic.Int32

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			signals := integrity.Signals{IP: fmt.Sprintf("10.0.0.%d", i), UserAgent: "test"}
			if _, err := svc.Submit(ctx, survey.ID, nil, signals); err != nil {
				failures.Add(1)
				t.Errorf("Submit %d error = %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	got, _ := store.Queries().GetSurvey(ctx, survey.ID)
	if got.SubmissionCount != n-int(failures.Load()) {
		t.Errorf("Expected count %d, got %d", n, got.SubmissionCount)
	}
	if !got.IsLocked || got.LockedAt == nil {
		t.Error("Expected survey to be locked")
	}
}

func TestPurgeFingerprints(t *testing.T) {
	store := testutil.SetupTestStore(t)
	ctx := context.Background()
	survey := testutil.CreateTestSurvey(t, store, "owner-1")

	past := time.Now().UTC().Add(-48 * time.Hour)
	pastGuard := integrity.NewGuard(time.Hour, func() time.Time { return past })
	svcPast := NewSubmissionService(store, integrity.NewGate(nil), pastGuard)
	if _, err := svcPast.Submit(ctx, survey.ID, nil, browser); err != nil {
		t.Fatal(err)
	}

	svc := NewSubmissionService(store, integrity.NewGate(nil), integrity.NewGuard(time.Hour, nil))
	n, err := svc.PurgeFingerprints(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Expected 1 purged fingerprint, got %d", n)
	}

	// Outside the window the respondent may answer again.
	if _, err := svc.Submit(ctx, survey.ID, nil, browser); err != nil {
		t.Errorf("Submit after purge error = %v", err)
	}
}

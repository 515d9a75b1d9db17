// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package integrity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/models"
)

// DefaultWindow is how long a fingerprint blocks repeat submissions.
const DefaultWindow = 30 * 24 * time.Hour

// FingerprintStore is the persistence the guard needs. Implementations are
// expected to be scoped to the caller's transaction.
type FingerprintStore interface {
	FingerprintExists(ctx context.Context, surveyID, hash string, since time.Time) (bool, error)
	InsertFingerprint(ctx context.Context, fp models.SubmissionFingerprint) error
}

// Guard enforces at-most-once submission per fingerprint and survey within a
// rolling window.
type Guard struct {
	window time.Duration
	now    func() time.Time
}

// NewGuard returns a guard with the given window. A zero window means DefaultWindow;
// a nil clock means time.Now.
func NewGuard(window time.Duration, now func() time.Time) *Guard {
	if window <= 0 {
		window = DefaultWindow
	}
	if now == nil {
		now = time.Now
	}
	return &Guard{window: window, now: now}
}

// Window returns the duplicate detection window.
func (g *Guard) Window() time.Duration {
	return g.window
}

// AlreadySubmitted reports whether the respondent has a fingerprint on record for
// the survey inside the window. Surveys without duplicate prevention are never
// hashed and always report false.
func (g *Guard) AlreadySubmitted(ctx context.Context, store FingerprintStore, survey models.Survey, s Signals) (bool, error) {
	if !survey.PreventDuplicates {
		return false, nil
	}
	s.SurveyID = survey.ID
	return store.FingerprintExists(ctx, survey.ID, Fingerprint(s), g.now().UTC().Add(-g.window))
}

// EnforceAndRecord rejects a duplicate respondent and otherwise records the
// fingerprint. The insert must share the transaction of the submission it guards
// so that a failed submission does not leave a fingerprint behind.
func (g *Guard) EnforceAndRecord(ctx context.Context, store FingerprintStore, survey models.Survey, s Signals) error {
	if !survey.PreventDuplicates {
		return nil
	}
	s.SurveyID = survey.ID
	hash := Fingerprint(s)
	now := g.now().UTC()

	exists, err := store.FingerprintExists(ctx, survey.ID, hash, now.Add(-g.window))
	if err != nil {
		return err
	}
	if exists {
		return apperr.Duplicate(apperr.MsgAlreadySubmitted)
	}

	return store.InsertFingerprint(ctx, models.SubmissionFingerprint{
		ID:              uuid.NewString(),
		SurveyID:        survey.ID,
		FingerprintHash: hash,
		SubmittedAt:     now,
	})
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/integrity"
	"github.com/danielhkuo/quickly-survey/models"
)

type SubmissionService struct {
	store *db.Store
	gate  integrity.Gate
	guard *integrity.Guard
}

func NewSubmissionService(store *db.Store, gate integrity.Gate, guard *integrity.Guard) *SubmissionService {
	return &SubmissionService{store: store, gate: gate, guard: guard}
}

// CheckDuplicate reports whether the respondent described by signals has
// already answered the survey. An unknown survey is reported as not submitted.
func (s *SubmissionService) CheckDuplicate(ctx context.Context, surveyID string, signals integrity.Signals) (bool, error) {
	var dup bool
	err := s.store.WithTx(ctx, "check duplicate", func(q *db.Queries) error {
		survey, err := q.GetSurvey(ctx, surveyID)
		if apperr.Is(err, apperr.KindNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		dup, err = s.guard.AlreadySubmitted(ctx, q, survey, signals)
		return err
	})
	return dup, err
}

// Submit accepts a response. Admission, validation, the duplicate check, the
// fingerprint, the submission with its answers and the counter update commit
// together or not at all.
func (s *SubmissionService) Submit(ctx context.Context, surveyID string, answers []models.AnswerInput, signals integrity.Signals) (models.Submission, error) {
	var sub models.Submission
	var locked bool

	err := s.store.WithTx(ctx, "submit", func(q *db.Queries) error {
		survey, err := q.GetSurveyForUpdate(ctx, surveyID)
		if err != nil {
			return err
		}

		if err := s.gate.Admit(survey); err != nil {
			return err
		}

		questions, err := q.ListQuestions(ctx, survey.ID)
		if err != nil {
			return err
		}
		if err := integrity.ValidateAnswers(answers, questions); err != nil {
			return err
		}

		if err := s.guard.EnforceAndRecord(ctx, q, survey, signals); err != nil {
			return err
		}

		now := s.gate.Now()
		sub = models.Submission{
			ID:        uuid.NewString(),
			SurveyID:  survey.ID,
			CreatedAt: now,
			Answers:   make([]models.Answer, 0, len(answers)),
		}
		for _, a := range answers {
			sub.Answers = append(sub.Answers, models.Answer{
				SubmissionID: sub.ID,
				QuestionID:   a.QuestionID,
				Response:     a.Response,
			})
		}
		if err := q.InsertSubmission(ctx, sub); err != nil {
			return err
		}

		count, _, err := q.IncrementSubmissionCount(ctx, survey.ID, now)
		if err != nil {
			return err
		}
		locked = integrity.Locks(count - 1)
		return nil
	})
	if err != nil {
		return models.Submission{}, err
	}

	if locked {
		slog.Info("survey locked", "survey_id", surveyID)
	}
	slog.Info("submission accepted", "survey_id", surveyID, "submission_id", sub.ID)

	return sub, nil
}

// ListSubmissions returns a survey's submissions with answers. Callers check
// ownership first.
func (s *SubmissionService) ListSubmissions(ctx context.Context, surveyID string) ([]models.Submission, error) {
	var subs []models.Submission
	err := s.store.WithTx(ctx, "list submissions", func(q *db.Queries) error {
		if _, err := q.GetSurvey(ctx, surveyID); err != nil {
			return err
		}
		var err error
		subs, err = q.ListSubmissions(ctx, surveyID)
		return err
	})
	return subs, err
}

// PurgeFingerprints drops fingerprints that fell out of the duplicate window.
func (s *SubmissionService) PurgeFingerprints(ctx context.Context) (int64, error) {
	var n int64
	err := s.store.WithTx(ctx, "purge fingerprints", func(q *db.Queries) error {
		var err error
		n, err = q.PurgeFingerprints(ctx, s.gate.Now().Add(-s.guard.Window()))
		return err
	})
	return n, err
}

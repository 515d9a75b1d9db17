// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/integrity"
	"github.com/danielhkuo/quickly-survey/models"
)

// DefaultSurveyTTL is how long a survey stays open when neither the request
// nor the configuration says otherwise.
const DefaultSurveyTTL = 30 * 24 * time.Hour

type SurveyService struct {
	store *db.Store
	gate  integrity.Gate
	ttl   time.Duration
}

// NewSurveyService returns a service that gives new surveys ttl to live unless
// the request says otherwise.
func NewSurveyService(store *db.Store, gate integrity.Gate, ttl time.Duration) *SurveyService {
	if ttl <= 0 {
		ttl = DefaultSurveyTTL
	}
	return &SurveyService{store: store, gate: gate, ttl: ttl}
}

// observe applies lazy expiry and persists it when the status changed.
func observe(ctx context.Context, gate integrity.Gate, q *db.Queries, s *models.Survey) error {
	if !gate.Observe(s) {
		return nil
	}
	s.LastUpdated = gate.Now()
	if err := q.UpdateSurveyStatus(ctx, s.ID, s.Status, s.LastUpdated); err != nil {
		return err
	}
	slog.Info("survey expired", "survey_id", s.ID)
	return nil
}

func owned(s models.Survey, ownerID string) error {
	if s.OwnerID != ownerID {
		return apperr.Forbidden(apperr.MsgForbidden)
	}
	return nil
}

// loadOwned fetches a survey for its owner, applying lazy expiry. lock takes
// a row lock for the rest of the transaction.
func (s *SurveyService) loadOwned(ctx context.Context, q *db.Queries, ownerID, id string, lock bool) (models.Survey, error) {
	var survey models.Survey
	var err error
	if lock {
		survey, err = q.GetSurveyForUpdate(ctx, id)
	} else {
		survey, err = q.GetSurvey(ctx, id)
	}
	if err != nil {
		return models.Survey{}, err
	}
	if err := owned(survey, ownerID); err != nil {
		return models.Survey{}, err
	}
	if err := observe(ctx, s.gate, q, &survey); err != nil {
		return models.Survey{}, err
	}
	return survey, nil
}

func (s *SurveyService) withQuestions(ctx context.Context, q *db.Queries, survey *models.Survey) error {
	questions, err := q.ListQuestions(ctx, survey.ID)
	if err != nil {
		return err
	}
	survey.Questions = questions
	return nil
}

func (s *SurveyService) Create(ctx context.Context, ownerID string, req models.CreateSurveyRequest) (models.Survey, error) {
	now := s.gate.Now()

	survey := models.Survey{
		ID:                uuid.NewString(),
		OwnerID:           ownerID,
		Name:              req.Name,
		Status:            models.StatusPrivate,
		PreventDuplicates: true,
		CreatedAt:         now,
		ExpiresAt:         now.Add(s.ttl),
		LastUpdated:       now,
	}
	if req.Status != "" {
		survey.Status = req.Status
	}
	if req.PreventDuplicates != nil {
		survey.PreventDuplicates = *req.PreventDuplicates
	}
	if req.ExpiresDelta > 0 {
		survey.ExpiresAt = now.Add(time.Duration(req.ExpiresDelta) * time.Minute)
	}

	questions, err := buildQuestions(survey.ID, req.Questions)
	if err != nil {
		return models.Survey{}, err
	}
	survey.Questions = questions

	err = s.store.WithTx(ctx, "create survey", func(q *db.Queries) error {
		if err := q.InsertSurvey(ctx, survey); err != nil {
			return err
		}
		return q.ReplaceQuestions(ctx, survey.ID, survey.Questions)
	})
	if err != nil {
		return models.Survey{}, err
	}

	slog.Info("survey created", "survey_id", survey.ID, "questions", len(questions))
	return survey, nil
}

// ListForOwner returns the owner's surveys, newest first, with lazy expiry applied.
func (s *SurveyService) ListForOwner(ctx context.Context, ownerID string) ([]models.Survey, error) {
	var surveys []models.Survey
	err := s.store.WithTx(ctx, "list surveys", func(q *db.Queries) error {
		var err error
		surveys, err = q.ListSurveysByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		for i := range surveys {
			if err := observe(ctx, s.gate, q, &surveys[i]); err != nil {
				return err
			}
		}
		return nil
	})
	return surveys, err
}

// FindByName returns the owner's surveys called exactly name, with lazy
// expiry applied.
func (s *SurveyService) FindByName(ctx context.Context, ownerID, name string) ([]models.Survey, error) {
	var surveys []models.Survey
	err := s.store.WithTx(ctx, "find surveys by name", func(q *db.Queries) error {
		var err error
		surveys, err = q.ListSurveysByName(ctx, ownerID, name)
		if err != nil {
			return err
		}
		for i := range surveys {
			if err := observe(ctx, s.gate, q, &surveys[i]); err != nil {
				return err
			}
		}
		return nil
	})
	return surveys, err
}

// ListPublic returns public surveys that have not expired. Overdue ones are
// expired on the way.
func (s *SurveyService) ListPublic(ctx context.Context) ([]models.Survey, error) {
	listed := []models.Survey{}
	err := s.store.WithTx(ctx, "list public surveys", func(q *db.Queries) error {
		surveys, err := q.ListPublicSurveys(ctx)
		if err != nil {
			return err
		}
		for i := range surveys {
			if err := observe(ctx, s.gate, q, &surveys[i]); err != nil {
				return err
			}
			if s.gate.Listable(surveys[i]) {
				listed = append(listed, surveys[i])
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return listed, nil
}

// Get returns one of the owner's surveys with its questions.
func (s *SurveyService) Get(ctx context.Context, ownerID, id string) (models.Survey, error) {
	var survey models.Survey
	err := s.store.WithTx(ctx, "get survey", func(q *db.Queries) error {
		var err error
		survey, err = s.loadOwned(ctx, q, ownerID, id, false)
		if err != nil {
			return err
		}
		return s.withQuestions(ctx, q, &survey)
	})
	return survey, err
}

// Authorize succeeds when ownerID owns the survey.
func (s *SurveyService) Authorize(ctx context.Context, ownerID, id string) error {
	return s.store.WithTx(ctx, "authorize", func(q *db.Queries) error {
		survey, err := q.GetSurvey(ctx, id)
		if err != nil {
			return err
		}
		return owned(survey, ownerID)
	})
}

// GetPublic returns a survey to respondents. Anything not public, including
// surveys that just expired, is reported as not found.
func (s *SurveyService) GetPublic(ctx context.Context, id string) (models.Survey, error) {
	var survey models.Survey
	visible := false
	err := s.store.WithTx(ctx, "get public survey", func(q *db.Queries) error {
		var err error
		survey, err = q.GetSurvey(ctx, id)
		if err != nil {
			return err
		}
		// Commit a lazy expiry even though the caller gets nothing back.
		if err := observe(ctx, s.gate, q, &survey); err != nil {
			return err
		}
		if survey.Status != models.StatusPublic {
			return nil
		}
		visible = true
		return s.withQuestions(ctx, q, &survey)
	})
	if err != nil {
		return models.Survey{}, err
	}
	if !visible {
		return models.Survey{}, apperr.NotFound(apperr.MsgSurveyNotFound)
	}
	return survey, nil
}

// Preview summarizes a survey for link unfurling. Private surveys are hidden;
// expired ones are shown with their status.
func (s *SurveyService) Preview(ctx context.Context, id string) (models.SurveyPreviewResponse, error) {
	var preview models.SurveyPreviewResponse
	err := s.store.WithTx(ctx, "preview survey", func(q *db.Queries) error {
		survey, err := q.GetSurvey(ctx, id)
		if err != nil {
			return err
		}
		if err := observe(ctx, s.gate, q, &survey); err != nil {
			return err
		}
		if survey.Status == models.StatusPrivate {
			return apperr.NotFound(apperr.MsgSurveyNotFound)
		}
		n, err := q.CountQuestions(ctx, survey.ID)
		if err != nil {
			return err
		}
		preview = models.SurveyPreviewResponse{
			Name:            survey.Name,
			Status:          survey.Status,
			QuestionCount:   n,
			SubmissionCount: survey.SubmissionCount,
			IsLocked:        survey.IsLocked,
		}
		return nil
	})
	return preview, err
}

// UpdateStatus moves a survey between private and public. Expired surveys
// are gone; an expiry noticed here is still persisted.
func (s *SurveyService) UpdateStatus(ctx context.Context, ownerID, id, status string) (models.Survey, error) {
	var survey models.Survey
	expired := false
	err := s.store.WithTx(ctx, "update survey status", func(q *db.Queries) error {
		var err error
		survey, err = s.loadOwned(ctx, q, ownerID, id, true)
		if err != nil {
			return err
		}
		if survey.Status == models.StatusExpired {
			expired = true
			return nil
		}
		if err := s.gate.Transition(survey, status); err != nil {
			return err
		}
		survey.Status = status
		survey.LastUpdated = s.gate.Now()
		if err := q.UpdateSurveyStatus(ctx, survey.ID, status, survey.LastUpdated); err != nil {
			return err
		}
		return s.withQuestions(ctx, q, &survey)
	})
	if err != nil {
		return models.Survey{}, err
	}
	if expired {
		return models.Survey{}, apperr.Gone(apperr.MsgStatusExpired)
	}

	slog.Info("survey status changed", "survey_id", id, "status", status)
	return survey, nil
}

// ReplaceQuestions swaps the whole question set. Surveys that already have
// responses are locked against this.
func (s *SurveyService) ReplaceQuestions(ctx context.Context, ownerID, id string, inputs []models.QuestionInput) (models.Survey, error) {
	questions, err := buildQuestions(id, inputs)
	if err != nil {
		return models.Survey{}, err
	}

	var survey models.Survey
	err = s.store.WithTx(ctx, "replace questions", func(q *db.Queries) error {
		var err error
		survey, err = s.loadOwned(ctx, q, ownerID, id, true)
		if err != nil {
			return err
		}
		if survey.IsLocked {
			return apperr.Locked(apperr.MsgSurveyLocked)
		}
		if err := q.ReplaceQuestions(ctx, id, questions); err != nil {
			return err
		}
		survey.LastUpdated = s.gate.Now()
		survey.Questions = questions
		return q.TouchSurvey(ctx, id, survey.LastUpdated)
	})
	if err != nil {
		return models.Survey{}, err
	}

	slog.Info("survey questions replaced", "survey_id", id, "questions", len(questions))
	return survey, nil
}

func (s *SurveyService) Delete(ctx context.Context, ownerID, id string) error {
	err := s.store.WithTx(ctx, "delete survey", func(q *db.Queries) error {
		survey, err := q.GetSurvey(ctx, id)
		if err != nil {
			return err
		}
		if err := owned(survey, ownerID); err != nil {
			return err
		}
		return q.DeleteSurvey(ctx, id)
	})
	if err != nil {
		return err
	}

	slog.Info("survey deleted", "survey_id", id)
	return nil
}

// ExpireOverdue persists expiry for every overdue survey.
func (s *SurveyService) ExpireOverdue(ctx context.Context) (int64, error) {
	var n int64
	err := s.store.WithTx(ctx, "expire surveys", func(q *db.Queries) error {
		var err error
		n, err = q.ExpireOverdue(ctx, s.gate.Now())
		return err
	})
	return n, err
}

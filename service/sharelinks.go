// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/auth"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/models"
)

// CreateShareLink issues a new link for one of the owner's surveys.
func (s *SurveyService) CreateShareLink(ctx context.Context, ownerID, surveyID string, req models.CreateShareLinkRequest) (models.ShareLink, error) {
	token, err := auth.GenerateShareToken()
	if err != nil {
		return models.ShareLink{}, err
	}

	link := models.ShareLink{
		ID:           uuid.NewString(),
		SurveyID:     surveyID,
		ShareToken:   token,
		IsActive:     true,
		MaxResponses: req.MaxResponses,
		CreatedAt:    s.gate.Now(),
	}
	if req.IsActive != nil {
		link.IsActive = *req.IsActive
	}
	if req.ExpiresAt != nil {
		at := req.ExpiresAt.UTC()
		link.ExpiresAt = &at
	}

	err = s.store.WithTx(ctx, "create share link", func(q *db.Queries) error {
		if _, err := s.loadOwned(ctx, q, ownerID, surveyID, false); err != nil {
			return err
		}
		return q.InsertShareLink(ctx, link)
	})
	if err != nil {
		return models.ShareLink{}, err
	}

	slog.Info("share link created", "survey_id", surveyID, "share_link_id", link.ID)
	return link, nil
}

func (s *SurveyService) ListShareLinks(ctx context.Context, ownerID, surveyID string) ([]models.ShareLink, error) {
	var links []models.ShareLink
	err := s.store.WithTx(ctx, "list share links", func(q *db.Queries) error {
		if _, err := s.loadOwned(ctx, q, ownerID, surveyID, false); err != nil {
			return err
		}
		var err error
		links, err = q.ListShareLinks(ctx, surveyID)
		return err
	})
	return links, err
}

// DeleteShareLink removes a link from one of the owner's surveys.
func (s *SurveyService) DeleteShareLink(ctx context.Context, ownerID, linkID string) error {
	err := s.store.WithTx(ctx, "delete share link", func(q *db.Queries) error {
		link, err := q.GetShareLink(ctx, linkID)
		if err != nil {
			return err
		}
		survey, err := q.GetSurvey(ctx, link.SurveyID)
		if err != nil {
			return err
		}
		if survey.OwnerID != ownerID {
			return apperr.Forbidden(apperr.MsgShareLinkForbidden)
		}
		return q.DeleteShareLink(ctx, linkID)
	})
	if err != nil {
		return err
	}

	slog.Info("share link deleted", "share_link_id", linkID)
	return nil
}

// OpenShareLink resolves a token to its survey with questions and counts the
// click. Inactive, expired and unknown links look the same to the caller. A
// link whose response limit is reached is gone.
func (s *SurveyService) OpenShareLink(ctx context.Context, token string) (models.Survey, error) {
	var survey models.Survey
	err := s.store.WithTx(ctx, "open share link", func(q *db.Queries) error {
		link, err := q.GetShareLinkByToken(ctx, token)
		if err != nil {
			return err
		}
		if !link.IsActive || (link.ExpiresAt != nil && link.ExpiresAt.Before(s.gate.Now())) {
			return apperr.NotFound(apperr.MsgShareLinkNotFound)
		}

		survey, err = q.GetSurvey(ctx, link.SurveyID)
		if err != nil {
			return err
		}
		if link.MaxResponses != nil && survey.SubmissionCount >= *link.MaxResponses {
			return apperr.Gone(apperr.MsgShareLinkExhausted)
		}
		if err := observe(ctx, s.gate, q, &survey); err != nil {
			return err
		}
		if err := q.IncrementClicks(ctx, link.ID); err != nil {
			return err
		}
		return s.withQuestions(ctx, q, &survey)
	})
	if err != nil {
		return models.Survey{}, err
	}
	return survey, nil
}

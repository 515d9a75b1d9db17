// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/models"
)

const surveyColumns = `id, owner_id, name, status, prevent_duplicates, submission_count,
	is_locked, locked_at, created_at, expires_at, last_updated`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSurvey(row rowScanner) (models.Survey, error) {
	var s models.Survey
	var lockedAt sql.NullTime
	err := row.Scan(
		&s.ID, &s.OwnerID, &s.Name, &s.Status, &s.PreventDuplicates, &s.SubmissionCount,
		&s.IsLocked, &lockedAt, &s.CreatedAt, &s.ExpiresAt, &s.LastUpdated,
	)
	if err != nil {
		return models.Survey{}, err
	}
	s.LockedAt = nullTime(lockedAt)
	s.Questions = []models.Question{}
	s.CreatedAt = utc(s.CreatedAt)
	s.ExpiresAt = utc(s.ExpiresAt)
	s.LastUpdated = utc(s.LastUpdated)
	return s, nil
}

func (q *Queries) InsertSurvey(ctx context.Context, s models.Survey) error {
	_, err := q.q.ExecContext(ctx, `
		INSERT INTO survey (id, owner_id, name, status, prevent_duplicates, submission_count,
			is_locked, created_at, expires_at, last_updated)
		VALUES ($1, $2, $3, $4, $5, 0, FALSE, $6, $7, $8)
	`, s.ID, s.OwnerID, s.Name, s.Status, s.PreventDuplicates, s.CreatedAt, s.ExpiresAt, s.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to insert survey: %w", err)
	}
	return nil
}

// GetSurvey loads a survey without its questions. A missing row is reported
// as apperr.KindNotFound.
func (q *Queries) GetSurvey(ctx context.Context, id string) (models.Survey, error) {
	return q.getSurvey(ctx, id, "")
}

// GetSurveyForUpdate is GetSurvey with a row lock held until the surrounding
// transaction ends. Concurrent submissions to one survey queue behind it.
func (q *Queries) GetSurveyForUpdate(ctx context.Context, id string) (models.Survey, error) {
	return q.getSurvey(ctx, id, q.forUpdate())
}

func (q *Queries) getSurvey(ctx context.Context, id, suffix string) (models.Survey, error) {
	row := q.q.QueryRowContext(ctx, `SELECT `+surveyColumns+` FROM survey WHERE id = $1`+suffix, id)
	s, err := scanSurvey(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Survey{}, apperr.NotFound(apperr.MsgSurveyNotFound)
	}
	if err != nil {
		return models.Survey{}, fmt.Errorf("failed to load survey: %w", err)
	}
	return s, nil
}

func (q *Queries) listSurveys(ctx context.Context, where string, args ...any) ([]models.Survey, error) {
	rows, err := q.q.QueryContext(ctx,
		`SELECT `+surveyColumns+` FROM survey WHERE `+where+` ORDER BY created_at DESC, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list surveys: %w", err)
	}
	defer rows.Close()

	surveys := []models.Survey{}
	for rows.Next() {
		s, err := scanSurvey(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan survey: %w", err)
		}
		surveys = append(surveys, s)
	}
	return surveys, rows.Err()
}

// ListSurveysByOwner returns the owner's surveys, newest first.
func (q *Queries) ListSurveysByOwner(ctx context.Context, ownerID string) ([]models.Survey, error) {
	return q.listSurveys(ctx, `owner_id = $1`, ownerID)
}

// ListSurveysByName returns the owner's surveys with exactly this name, newest first.
func (q *Queries) ListSurveysByName(ctx context.Context, ownerID, name string) ([]models.Survey, error) {
	return q.listSurveys(ctx, `owner_id = $1 AND name = $2`, ownerID, name)
}

// ListPublicSurveys returns surveys stored as public. Callers still have to
// filter out overdue rows.
func (q *Queries) ListPublicSurveys(ctx context.Context) ([]models.Survey, error) {
	return q.listSurveys(ctx, `status = $1`, models.StatusPublic)
}

func (q *Queries) UpdateSurveyStatus(ctx context.Context, id, status string, now time.Time) error {
	_, err := q.q.ExecContext(ctx, `
		UPDATE survey SET status = $2, last_updated = $3 WHERE id = $1
	`, id, status, now)
	if err != nil {
		return fmt.Errorf("failed to update survey status: %w", err)
	}
	return nil
}

// TouchSurvey bumps last_updated.
func (q *Queries) TouchSurvey(ctx context.Context, id string, now time.Time) error {
	_, err := q.q.ExecContext(ctx, `UPDATE survey SET last_updated = $2 WHERE id = $1`, id, now)
	if err != nil {
		return fmt.Errorf("failed to touch survey: %w", err)
	}
	return nil
}

// ExpireOverdue marks every non-expired survey whose expiry has passed as
// expired and returns how many rows changed.
func (q *Queries) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.q.ExecContext(ctx, `
		UPDATE survey SET status = $1, last_updated = $2
		WHERE status <> $1 AND expires_at < $2
	`, models.StatusExpired, now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire surveys: %w", err)
	}
	return res.RowsAffected()
}

// DeleteSurvey removes a survey and, by cascade, everything it owns.
func (q *Queries) DeleteSurvey(ctx context.Context, id string) error {
	res, err := q.q.ExecContext(ctx, `DELETE FROM survey WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete survey: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound(apperr.MsgSurveyNotFound)
	}
	return nil
}

// IncrementSubmissionCount adds one accepted submission. The first one also
// locks the survey. The whole change is one statement, so exactly one caller
// ever sees the count go from 0 to 1.
func (q *Queries) IncrementSubmissionCount(ctx context.Context, id string, now time.Time) (count int, locked bool, err error) {
	err = q.q.QueryRowContext(ctx, `
		UPDATE survey SET
			submission_count = submission_count + 1,
			is_locked = CASE WHEN submission_count = 0 THEN TRUE ELSE is_locked END,
			locked_at = CASE WHEN submission_count = 0 AND locked_at IS NULL THEN $2 ELSE locked_at END
		WHERE id = $1
		RETURNING submission_count, is_locked
	`, id, now).Scan(&count, &locked)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, apperr.NotFound(apperr.MsgSurveyNotFound)
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to increment submission count: %w", err)
	}
	return count, locked, nil
}

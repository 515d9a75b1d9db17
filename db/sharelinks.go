// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/models"
)

const shareLinkColumns = `id, survey_id, share_token, is_active, max_responses, expires_at, created_at, clicks`

func scanShareLink(row rowScanner) (models.ShareLink, error) {
	var l models.ShareLink
	var maxResponses sql.NullInt64
	var expiresAt sql.NullTime
	err := row.Scan(&l.ID, &l.SurveyID, &l.ShareToken, &l.IsActive, &maxResponses, &expiresAt, &l.CreatedAt, &l.Clicks)
	if err != nil {
		return models.ShareLink{}, err
	}
	l.MaxResponses = nullInt(maxResponses)
	l.ExpiresAt = nullTime(expiresAt)
	l.CreatedAt = utc(l.CreatedAt)
	return l, nil
}

func (q *Queries) InsertShareLink(ctx context.Context, l models.ShareLink) error {
	var expiresAt any
	if l.ExpiresAt != nil {
		expiresAt = l.ExpiresAt.UTC()
	}
	var maxResponses any
	if l.MaxResponses != nil {
		maxResponses = *l.MaxResponses
	}

	_, err := q.q.ExecContext(ctx, `
		INSERT INTO share_link (id, survey_id, share_token, is_active, max_responses, expires_at, created_at, clicks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0)
	`, l.ID, l.SurveyID, l.ShareToken, l.IsActive, maxResponses, expiresAt, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert share link: %w", err)
	}
	return nil
}

func (q *Queries) ListShareLinks(ctx context.Context, surveyID string) ([]models.ShareLink, error) {
	rows, err := q.q.QueryContext(ctx, `
		SELECT `+shareLinkColumns+` FROM share_link WHERE survey_id = $1 ORDER BY created_at, id
	`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list share links: %w", err)
	}
	defer rows.Close()

	links := []models.ShareLink{}
	for rows.Next() {
		l, err := scanShareLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan share link: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// GetShareLinkByToken resolves a token. Unknown tokens are apperr.KindNotFound.
func (q *Queries) GetShareLinkByToken(ctx context.Context, token string) (models.ShareLink, error) {
	row := q.q.QueryRowContext(ctx, `SELECT `+shareLinkColumns+` FROM share_link WHERE share_token = $1`, token)
	l, err := scanShareLink(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ShareLink{}, apperr.NotFound(apperr.MsgShareLinkNotFound)
	}
	if err != nil {
		return models.ShareLink{}, fmt.Errorf("failed to load share link: %w", err)
	}
	return l, nil
}

// GetShareLink loads a link by id. Unknown ids are apperr.KindNotFound.
func (q *Queries) GetShareLink(ctx context.Context, id string) (models.ShareLink, error) {
	row := q.q.QueryRowContext(ctx, `SELECT `+shareLinkColumns+` FROM share_link WHERE id = $1`, id)
	l, err := scanShareLink(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ShareLink{}, apperr.NotFound(apperr.MsgShareLinkNotFound)
	}
	if err != nil {
		return models.ShareLink{}, fmt.Errorf("failed to load share link: %w", err)
	}
	return l, nil
}

func (q *Queries) DeleteShareLink(ctx context.Context, id string) error {
	res, err := q.q.ExecContext(ctx, `DELETE FROM share_link WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete share link: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound(apperr.MsgShareLinkNotFound)
	}
	return nil
}

func (q *Queries) IncrementClicks(ctx context.Context, id string) error {
	_, err := q.q.ExecContext(ctx, `UPDATE share_link SET clicks = clicks + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to count share link click: %w", err)
	}
	return nil
}

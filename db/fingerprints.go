// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-survey/models"
)

// FingerprintExists reports whether the survey has a record of hash newer
// than since.
func (q *Queries) FingerprintExists(ctx context.Context, surveyID, hash string, since time.Time) (bool, error) {
	var exists bool
	err := q.q.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM submission_fingerprint
			WHERE survey_id = $1 AND fingerprint_hash = $2 AND submitted_at > $3
		)
	`, surveyID, hash, since.UTC()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to look up fingerprint: %w", err)
	}
	return exists, nil
}

func (q *Queries) InsertFingerprint(ctx context.Context, fp models.SubmissionFingerprint) error {
	_, err := q.q.ExecContext(ctx, `
		INSERT INTO submission_fingerprint (id, survey_id, fingerprint_hash, submitted_at)
		VALUES ($1, $2, $3, $4)
	`, fp.ID, fp.SurveyID, fp.FingerprintHash, fp.SubmittedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert fingerprint: %w", err)
	}
	return nil
}

// PurgeFingerprints deletes records submitted before cutoff. They can no
// longer block anyone.
func (q *Queries) PurgeFingerprints(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.q.ExecContext(ctx, `
		DELETE FROM submission_fingerprint WHERE submitted_at <= $1
	`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge fingerprints: %w", err)
	}
	return res.RowsAffected()
}

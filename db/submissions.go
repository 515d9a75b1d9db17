// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-survey/models"
)

// InsertSubmission stores a submission together with its answers.
func (q *Queries) InsertSubmission(ctx context.Context, sub models.Submission) error {
	_, err := q.q.ExecContext(ctx, `
		INSERT INTO submission (id, survey_id, created_at)
		VALUES ($1, $2, $3)
	`, sub.ID, sub.SurveyID, sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	for _, a := range sub.Answers {
		_, err := q.q.ExecContext(ctx, `
			INSERT INTO answer (id, submission_id, question_id, response)
			VALUES ($1, $2, $3, $4)
		`, uuid.NewString(), sub.ID, a.QuestionID, a.Response)
		if err != nil {
			return fmt.Errorf("failed to insert answer: %w", err)
		}
	}
	return nil
}

// ListSubmissions returns every submission of a survey with its answers,
// oldest first.
func (q *Queries) ListSubmissions(ctx context.Context, surveyID string) ([]models.Submission, error) {
	rows, err := q.q.QueryContext(ctx, `
		SELECT id, survey_id, created_at
		FROM submission
		WHERE survey_id = $1
		ORDER BY created_at, id
	`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	subs := []models.Submission{}
	index := map[string]int{}
	for rows.Next() {
		var s models.Submission
		if err := rows.Scan(&s.ID, &s.SurveyID, &s.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		s.CreatedAt = utc(s.CreatedAt)
		s.Answers = []models.Answer{}
		index[s.ID] = len(subs)
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	rows.Close()

	if len(subs) == 0 {
		return subs, nil
	}

	rows, err = q.q.QueryContext(ctx, `
		SELECT a.submission_id, a.question_id, a.response
		FROM answer a
		JOIN submission s ON s.id = a.submission_id
		LEFT JOIN question qu ON qu.id = a.question_id
		WHERE s.survey_id = $1
		ORDER BY a.submission_id, qu.position, a.response
	`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.SubmissionID, &a.QuestionID, &a.Response); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		if i, ok := index[a.SubmissionID]; ok {
			subs[i].Answers = append(subs[i].Answers, a)
		}
	}
	return subs, rows.Err()
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"

	"github.com/danielhkuo/quickly-survey/models"
)

// ListQuestions returns a survey's questions in position order, each with its
// choices in position order.
func (q *Queries) ListQuestions(ctx context.Context, surveyID string) ([]models.Question, error) {
	rows, err := q.q.QueryContext(ctx, `
		SELECT id, survey_id, position, content, answer_type
		FROM question
		WHERE survey_id = $1
		ORDER BY position
	`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	questions := []models.Question{}
	index := map[string]int{}
	for rows.Next() {
		var qu models.Question
		if err := rows.Scan(&qu.ID, &qu.SurveyID, &qu.Position, &qu.Content, &qu.AnswerType); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		qu.Choices = []models.Choice{}
		index[qu.ID] = len(questions)
		questions = append(questions, qu)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	rows.Close()

	if len(questions) == 0 {
		return questions, nil
	}

	rows, err = q.q.QueryContext(ctx, `
		SELECT c.id, c.question_id, c.position, c.content
		FROM choice c
		JOIN question qu ON qu.id = c.question_id
		WHERE qu.survey_id = $1
		ORDER BY qu.position, c.position
	`, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list choices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.Position, &c.Content); err != nil {
			return nil, fmt.Errorf("failed to scan choice: %w", err)
		}
		if i, ok := index[c.QuestionID]; ok {
			questions[i].Choices = append(questions[i].Choices, c)
		}
	}
	return questions, rows.Err()
}

// CountQuestions returns how many questions a survey has.
func (q *Queries) CountQuestions(ctx context.Context, surveyID string) (int, error) {
	var n int
	err := q.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM question WHERE survey_id = $1`, surveyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return n, nil
}

// ReplaceQuestions deletes a survey's questions, and their choices by cascade,
// then inserts the given set. IDs must already be assigned.
func (q *Queries) ReplaceQuestions(ctx context.Context, surveyID string, questions []models.Question) error {
	if _, err := q.q.ExecContext(ctx, `DELETE FROM question WHERE survey_id = $1`, surveyID); err != nil {
		return fmt.Errorf("failed to delete questions: %w", err)
	}

	for _, qu := range questions {
		_, err := q.q.ExecContext(ctx, `
			INSERT INTO question (id, survey_id, position, content, answer_type)
			VALUES ($1, $2, $3, $4, $5)
		`, qu.ID, surveyID, qu.Position, qu.Content, qu.AnswerType)
		if err != nil {
			return fmt.Errorf("failed to insert question: %w", err)
		}

		for _, c := range qu.Choices {
			_, err := q.q.ExecContext(ctx, `
				INSERT INTO choice (id, question_id, position, content)
				VALUES ($1, $2, $3, $4)
			`, c.ID, qu.ID, c.Position, c.Content)
			if err != nil {
				return fmt.Errorf("failed to insert choice: %w", err)
			}
		}
	}
	return nil
}

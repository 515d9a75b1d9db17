// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package integrity

import (
	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/models"
)

// IsChoiceType reports whether answers to the type must match a choice content.
func IsChoiceType(answerType string) bool {
	switch answerType {
	case models.AnswerClose, models.AnswerDropdown, models.AnswerYesNo, models.AnswerMultiple:
		return true
	}
	return false
}

// ValidateAnswers checks a submitted answer set against the survey's current
// questions and returns the first violation found.
//
// Answers naming unknown questions or unknown choices yield a stale schema error,
// since the client rendered an older version of the survey. Cardinality problems
// yield validation errors. Questions are expected in position order.
func ValidateAnswers(answers []models.AnswerInput, questions []models.Question) error {
	known := make(map[string]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
	}

	byQuestion := make(map[string][]string, len(questions))
	for _, a := range answers {
		if !known[a.QuestionID] {
			return apperr.StaleSchema(apperr.MsgUnknownQuestion, a.QuestionID)
		}
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a.Response)
	}

	for _, q := range questions {
		if err := validateQuestion(q, byQuestion[q.ID]); err != nil {
			return err
		}
	}
	return nil
}

func validateQuestion(q models.Question, responses []string) error {
	if len(responses) == 0 {
		return apperr.Validation(apperr.MsgMissingAnswer, q.ID)
	}

	if q.AnswerType != models.AnswerMultiple && len(responses) > 1 {
		return apperr.Validation(apperr.MsgTooManyAnswers, q.ID, q.AnswerType)
	}

	if !IsChoiceType(q.AnswerType) {
		return nil
	}

	choices := make(map[string]bool, len(q.Choices))
	for _, c := range q.Choices {
		choices[c.Content] = true
	}

	seen := make(map[string]bool, len(responses))
	for _, r := range responses {
		if !choices[r] {
			return apperr.StaleSchema(apperr.MsgUnknownChoice, r, q.ID)
		}
		if seen[r] {
			return apperr.Validation(apperr.MsgDuplicateChoice, r, q.ID)
		}
		seen[r] = true
	}
	return nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/integrity"
	"github.com/danielhkuo/quickly-survey/models"
)

// buildQuestions turns request input into questions with fresh ids. Question
// positions must run 0..n-1 in order, and so must each question's choices.
func buildQuestions(surveyID string, inputs []models.QuestionInput) ([]models.Question, error) {
	questions := make([]models.Question, 0, len(inputs))

	for i, in := range inputs {
		if in.Position != i {
			return nil, apperr.Validation(apperr.MsgQuestionOrder)
		}

		choiceType := integrity.IsChoiceType(in.AnswerType)
		if choiceType && len(in.Choices) == 0 {
			return nil, apperr.Validation(apperr.MsgChoicesRequired, i, in.AnswerType)
		}
		if !choiceType && len(in.Choices) > 0 {
			return nil, apperr.Validation(apperr.MsgChoicesNotAllowed, i, in.AnswerType)
		}

		q := models.Question{
			ID:         uuid.NewString(),
			SurveyID:   surveyID,
			Position:   in.Position,
			Content:    in.Content,
			AnswerType: in.AnswerType,
			Choices:    make([]models.Choice, 0, len(in.Choices)),
		}

		seen := make(map[string]bool, len(in.Choices))
		for j, c := range in.Choices {
			if c.Position != j {
				return nil, apperr.Validation(apperr.MsgChoiceOrder, i)
			}
			if seen[c.Content] {
				return nil, apperr.Validation(apperr.MsgDuplicateOption, i, c.Content)
			}
			seen[c.Content] = true

			q.Choices = append(q.Choices, models.Choice{
				ID:         uuid.NewString(),
				QuestionID: q.ID,
				Position:   c.Position,
				Content:    c.Content,
			})
		}

		questions = append(questions, q)
	}

	return questions, nil
}

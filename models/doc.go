// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON. Struct tags drive go-playground/validator:

  - CreateSurveyRequest: name, status, prevent_duplicates, expires_delta, questions
  - UpdateStatusRequest: status
  - ReplaceQuestionsRequest: questions
  - SubmitRequest: answers, fingerprint_advanced
  - CreateShareLinkRequest: is_active, max_responses, expires_at

# Response Types

  - CheckDuplicateResponse: already_submitted
  - SurveyPreviewResponse: name, status, question_count, submission_count, is_locked
  - ErrorResponse: error, code, message

# Domain Types

  - Survey: owner, lifecycle state, counters and lock
  - Question, Choice: ordered by position
  - Submission, Answer: one answer row per question, several for multiple
  - SubmissionFingerprint: respondent digest, never serialized
  - ShareLink: tokenized access with optional limits

# Constants

Status values:

	StatusPrivate = "private"
	StatusPublic  = "public"
	StatusExpired = "expired"

Answer types: open, close, multiple, scale, rating, yes_no, dropdown, date,
email, number. close, multiple, yes_no and dropdown take choices.
*/
package models

package models

import "time"

// Survey status constants
const (
	StatusPrivate = "private"
	StatusPublic  = "public"
	StatusExpired = "expired"
)

// Answer type constants
const (
	AnswerOpen     = "open"
	AnswerClose    = "close"
	AnswerMultiple = "multiple"
	AnswerScale    = "scale"
	AnswerRating   = "rating"
	AnswerYesNo    = "yes_no"
	AnswerDropdown = "dropdown"
	AnswerDate     = "date"
	AnswerEmail    = "email"
	AnswerNumber   = "number"
)

// Request types

type ChoiceInput struct {
	Content  string `json:"content" validate:"required,max=500"`
	Position int    `json:"position" validate:"gte=0"`
}

type QuestionInput struct {
	Content    string        `json:"content" validate:"required,max=1000"`
	Position   int           `json:"position" validate:"gte=0"`
	AnswerType string        `json:"answer_type" validate:"required,oneof=open close multiple scale rating yes_no dropdown date email number"`
	Choices    []ChoiceInput `json:"choices" validate:"dive"`
}

type CreateSurveyRequest struct {
	Name              string          `json:"name" validate:"required,max=255"`
	Status            string          `json:"status" validate:"omitempty,oneof=public private"`
	PreventDuplicates *bool           `json:"prevent_duplicates"`
	ExpiresDelta      int             `json:"expires_delta" validate:"gte=0"` // minutes
	Questions         []QuestionInput `json:"questions" validate:"dive"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ReplaceQuestionsRequest struct {
	Questions []QuestionInput `json:"questions" validate:"dive"`
}

type AnswerInput struct {
	QuestionID string `json:"question_id" validate:"required"`
	Response   string `json:"response" validate:"max=10000"`
}

type SubmitRequest struct {
	Answers             []AnswerInput `json:"answers" validate:"dive"`
	FingerprintAdvanced string        `json:"fingerprint_advanced" validate:"max=512"`
}

type CreateShareLinkRequest struct {
	IsActive     *bool      `json:"is_active"`
	MaxResponses *int       `json:"max_responses" validate:"omitempty,gt=0"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

// Response types

type CheckDuplicateResponse struct {
	AlreadySubmitted bool `json:"already_submitted"`
}

type SurveyPreviewResponse struct {
	Name            string `json:"name"`
	Status          string `json:"status"`
	QuestionCount   int    `json:"question_count"`
	SubmissionCount int    `json:"submission_count"`
	IsLocked        bool   `json:"is_locked"`
}

// Domain types

type Survey struct {
	ID                string     `json:"id"`
	OwnerID           string     `json:"-"`
	Name              string     `json:"name"`
	Status            string     `json:"status"`
	PreventDuplicates bool       `json:"prevent_duplicates"`
	SubmissionCount   int        `json:"submission_count"`
	IsLocked          bool       `json:"is_locked"`
	LockedAt          *time.Time `json:"locked_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	ExpiresAt         time.Time  `json:"expires_at"`
	LastUpdated       time.Time  `json:"last_updated"`
	Questions         []Question `json:"questions"`
}

type Question struct {
	ID         string   `json:"id"`
	SurveyID   string   `json:"survey_id"`
	Position   int      `json:"position"`
	Content    string   `json:"content"`
	AnswerType string   `json:"answer_type"`
	Choices    []Choice `json:"choices"`
}

type Choice struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	Position   int    `json:"position"`
	Content    string `json:"content"`
}

type Submission struct {
	ID        string    `json:"id"`
	SurveyID  string    `json:"survey_id"`
	CreatedAt time.Time `json:"created_at"`
	Answers   []Answer  `json:"answers"`
}

type Answer struct {
	SubmissionID string `json:"submission_id"`
	QuestionID   string `json:"question_id"`
	Response     string `json:"response"`
}

// Never linked to a personal identifier; only the digest is stored.
type SubmissionFingerprint struct {
	ID              string    `json:"-"`
	SurveyID        string    `json:"-"`
	FingerprintHash string    `json:"-"`
	SubmittedAt     time.Time `json:"-"`
}

type ShareLink struct {
	ID           string     `json:"id"`
	SurveyID     string     `json:"survey_id"`
	ShareToken   string     `json:"share_token"`
	IsActive     bool       `json:"is_active"`
	MaxResponses *int       `json:"max_responses,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	Clicks       int        `json:"clicks"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/quickly-survey/integrity"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/service"
)

type SubmissionHandler struct {
	submissions *service.SubmissionService
	surveys     *service.SurveyService
}

func NewSubmissionHandler(submissions *service.SubmissionService, surveys *service.SurveyService) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions, surveys: surveys}
}

// signals collects the respondent attributes the fingerprint is built from.
func signals(r *http.Request, surveyID, advanced string) integrity.Signals {
	return integrity.Signals{
		IP:        middleware.GetClientIP(r),
		UserAgent: r.UserAgent(),
		SurveyID:  surveyID,
		Advanced:  advanced,
	}
}

// Check handles GET /surveys/{id}/submissions/check
// Optional query param fingerprint carries the client-side token
func (h *SubmissionHandler) Check(w http.ResponseWriter, r *http.Request) {
	surveyID := chi.URLParam(r, "id")

	dup, err := h.submissions.CheckDuplicate(r.Context(), surveyID, signals(r, surveyID, r.URL.Query().Get("fingerprint")))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, r, http.StatusOK, models.CheckDuplicateResponse{AlreadySubmitted: dup})
}

// Submit handles POST /surveys/{id}/submissions
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	surveyID := chi.URLParam(r, "id")

	var req models.SubmitRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	sub, err := h.submissions.Submit(r.Context(), surveyID, req.Answers, signals(r, surveyID, req.FingerprintAdvanced))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, r, http.StatusCreated, sub)
}

// List handles GET /surveys/{id}/submissions
// Owner only
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	surveyID := chi.URLParam(r, "id")

	if err := h.surveys.Authorize(r.Context(), middleware.OwnerID(r.Context()), surveyID); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	subs, err := h.submissions.ListSubmissions(r.Context(), surveyID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if subs == nil {
		subs = []models.Submission{}
	}

	middleware.JSONResponse(w, r, http.StatusOK, subs)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/service"
)

type SurveyHandler struct {
	surveys *service.SurveyService
}

func NewSurveyHandler(surveys *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveys: surveys}
}

// Create handles POST /surveys
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSurveyRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	survey, err := h.surveys.Create(r.Context(), middleware.OwnerID(r.Context()), req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, r, http.StatusCreated, survey)
}

// List handles GET /surveys
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.surveys.ListForOwner(r.Context(), middleware.OwnerID(r.Context()))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if surveys == nil {
		surveys = []models.Survey{}
	}

	middleware.JSONResponse(w, r, http.StatusOK, surveys)
}

// FindByName handles GET /surveys/name/{name}
func (h *SurveyHandler) FindByName(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.surveys.FindByName(r.Context(), middleware.OwnerID(r.Context()), chi.URLParam(r, "name"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, r, http.StatusOK, surveys)
}

// ListPublic handles GET /surveys/public
func (h *SurveyHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.surveys.ListPublic(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, r, http.StatusOK, surveys)
}

// Get handles GET /surveys/{id}
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	survey, err := h.surveys.Get(r.Context(), middleware.OwnerID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, r, http.StatusOK, survey)
}

// GetPublic handles GET /surveys/{id}/public
func (h *SurveyHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	survey, err := h.surveys.GetPublic(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, r, http.StatusOK, survey)
}

// Preview handles GET /surveys/{id}/preview
// Unauthenticated; used for link unfurling
func (h *SurveyHandler) Preview(w http.ResponseWriter, r *http.Request) {
	preview, err := h.surveys.Preview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, r, http.StatusOK, preview)
}

// UpdateStatus handles PATCH /surveys/{id}/status
func (h *SurveyHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateStatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	survey, err := h.surveys.UpdateStatus(r.Context(), middleware.OwnerID(r.Context()), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, r, http.StatusOK, survey)
}

// ReplaceQuestions handles PUT /surveys/{id}/questions
func (h *SurveyHandler) ReplaceQuestions(w http.ResponseWriter, r *http.Request) {
	var req models.ReplaceQuestionsRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	survey, err := h.surveys.ReplaceQuestions(r.Context(), middleware.OwnerID(r.Context()), chi.URLParam(r, "id"), req.Questions)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, r, http.StatusOK, survey)
}

// Delete handles DELETE /surveys/{id}
func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.surveys.Delete(r.Context(), middleware.OwnerID(r.Context()), chi.URLParam(r, "id")); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

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

type ShareLinkHandler struct {
	surveys *service.SurveyService
}

func NewShareLinkHandler(surveys *service.SurveyService) *ShareLinkHandler {
	return &ShareLinkHandler{surveys: surveys}
}

// Create handles POST /surveys/{id}/share-links
func (h *ShareLinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateShareLinkRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	link, err := h.surveys.CreateShareLink(r.Context(), middleware.OwnerID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, r, http.StatusCreated, link)
}

// List handles GET /surveys/{id}/share-links
func (h *ShareLinkHandler) List(w http.ResponseWriter, r *http.Request) {
	links, err := h.surveys.ListShareLinks(r.Context(), middleware.OwnerID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if links == nil {
		links = []models.ShareLink{}
	}

	middleware.JSONResponse(w, r, http.StatusOK, links)
}

// Delete handles DELETE /share-links/{linkID}
func (h *ShareLinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.surveys.DeleteShareLink(r.Context(), middleware.OwnerID(r.Context()), chi.URLParam(r, "linkID")); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Open handles GET /share/{token}
func (h *ShareLinkHandler) Open(w http.ResponseWriter, r *http.Request) {
	survey, err := h.surveys.OpenShareLink(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, r, http.StatusOK, survey)
}

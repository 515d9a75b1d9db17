// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/handlers"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/service"
)

func NewRouter(svc *service.Services, cfg cliparse.Config) http.Handler {
	// Initialize handlers
	surveyHandler := handlers.NewSurveyHandler(svc.Surveys)
	submissionHandler := handlers.NewSubmissionHandler(svc.Submissions, svc.Surveys)
	shareLinkHandler := handlers.NewShareLinkHandler(svc.Surveys)

	owner := middleware.RequireOwner(cfg.TokenSecret)

	r := chi.NewRouter()
	r.Use(chimw.RequestID, middleware.WithLogging, chimw.Recoverer, middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Share links resolve without a token
	r.Get("/share/{token}", shareLinkHandler.Open)
	r.With(owner).Delete("/share-links/{linkID}", shareLinkHandler.Delete)

	r.Route("/surveys", func(r chi.Router) {
		r.Get("/public", surveyHandler.ListPublic)

		// Survey management (owner operations)
		r.With(owner).Post("/", surveyHandler.Create)
		r.With(owner).Get("/", surveyHandler.List)
		r.With(owner).Get("/name/{name}", surveyHandler.FindByName)

		r.Route("/{id}", func(r chi.Router) {
			// Respondent operations (public)
			r.Get("/public", surveyHandler.GetPublic)
			r.Get("/preview", surveyHandler.Preview)
			r.Get("/submissions/check", submissionHandler.Check)
			r.Post("/submissions", submissionHandler.Submit)

			r.Group(func(r chi.Router) {
				r.Use(owner)
				r.Get("/", surveyHandler.Get)
				r.Delete("/", surveyHandler.Delete)
				r.Patch("/status", surveyHandler.UpdateStatus)
				r.Put("/questions", surveyHandler.ReplaceQuestions)
				r.Get("/submissions", submissionHandler.List)
				r.Post("/share-links", shareLinkHandler.Create)
				r.Get("/share-links", shareLinkHandler.List)
			})
		})
	})

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-survey API v1"))
	})

	return r
}

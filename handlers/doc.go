// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Survey API.

# Handler Types

Each handler is a thin struct over the service layer:

  - SurveyHandler: Survey CRUD, status changes, question replacement, preview
  - SubmissionHandler: Duplicate check, submission, owner listing
  - ShareLinkHandler: Share link creation and resolution

	svc := service.New(store, cfg.DefaultSurveyTTL, cfg.DuplicateWindow)
	surveyHandler := handlers.NewSurveyHandler(svc.Surveys)

Handlers decode with middleware.DecodeAndValidate, read path parameters with
chi.URLParam and report every failure through middleware.WriteError.

# Survey Lifecycle

	private <-> public -> expired

Owners switch between private and public. Expiry is applied lazily whenever a
survey is read and cannot be undone. A survey is locked by its first response;
after that PUT /surveys/{id}/questions returns 409 survey_locked.

# Submissions

	GET  /surveys/{id}/submissions/check?fingerprint=
	POST /surveys/{id}/submissions

The respondent is identified by client IP and User-Agent, or by the optional
client-side fingerprint token when one is sent. Repeat submissions within the
duplicate window return 409 duplicate_submission.
*/
package handlers

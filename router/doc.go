// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the services and HTTP handlers onto a chi router.

# Usage

	svc := service.New(store, cfg.DefaultSurveyTTL, cfg.DuplicateWindow)
	handler := router.NewRouter(svc, cfg)
	server := &http.Server{Addr: ":3318", Handler: handler}

Every request passes through chi's RequestID and Recoverer, request logging
and CORS. Owner routes additionally require a bearer token.

# Routes

Health and info:
  - GET /health - Health check
  - GET / - API version

Surveys (owner, Authorization: Bearer):
  - POST /surveys - Create a survey
  - GET /surveys - List own surveys
  - GET /surveys/name/{name} - Own surveys with that exact name
  - GET /surveys/{id} - Fetch own survey with questions
  - PATCH /surveys/{id}/status - Switch between private and public
  - PUT /surveys/{id}/questions - Replace the question set (until first response)
  - DELETE /surveys/{id} - Delete with everything attached
  - GET /surveys/{id}/submissions - List responses
  - POST /surveys/{id}/share-links - Create a share link
  - GET /surveys/{id}/share-links - List share links
  - DELETE /share-links/{linkID} - Delete a share link

Respondents (public):
  - GET /surveys/public - Open public surveys
  - GET /surveys/{id}/public - Public survey with questions
  - GET /surveys/{id}/preview - Name, status and counts for link unfurling
  - GET /surveys/{id}/submissions/check?fingerprint= - Duplicate check
  - POST /surveys/{id}/submissions - Submit a response
  - GET /share/{token} - Open a survey through a share link
*/
package router

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"time"

	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/integrity"
)

// Services bundles the services built over one store. Both share a gate so
// they agree on the clock.
type Services struct {
	Surveys     *SurveyService
	Submissions *SubmissionService
}

// New builds the services. ttl is the default survey lifetime and window the
// duplicate detection window; zero picks the defaults.
func New(store *db.Store, ttl, window time.Duration) *Services {
	gate := integrity.NewGate(nil)
	return &Services{
		Surveys:     NewSurveyService(store, gate, ttl),
		Submissions: NewSubmissionService(store, gate, integrity.NewGuard(window, nil)),
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package integrity

import (
	"time"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/models"
)

// Gate decides whether a survey accepts submissions and drives its status
// lifecycle: private <-> public by owner action, anything -> expired once
// expires_at has passed. Expired is terminal.
type Gate struct {
	now func() time.Time
}

func NewGate(now func() time.Time) Gate {
	if now == nil {
		now = time.Now
	}
	return Gate{now: now}
}

// Now returns the gate's clock reading in UTC.
func (g Gate) Now() time.Time {
	return g.now().UTC()
}

// Overdue reports whether the survey's expiry time has passed, whatever its
// stored status says.
func (g Gate) Overdue(s models.Survey) bool {
	return s.ExpiresAt.Before(g.Now())
}

// Observe applies lazy expiry to s. It returns true when the status changed and
// the caller has to persist it.
func (g Gate) Observe(s *models.Survey) bool {
	if s.Status == models.StatusExpired || !g.Overdue(*s) {
		return false
	}
	s.Status = models.StatusExpired
	return true
}

// Admit rejects submissions to expired surveys. The expiry time is checked too,
// so a survey whose expired status has not been written yet is still refused.
// The lock flag is not consulted.
func (g Gate) Admit(s models.Survey) error {
	if s.Status == models.StatusExpired || g.Overdue(s) {
		return apperr.Gone(apperr.MsgSurveyExpired)
	}
	return nil
}

// Transition validates an owner-requested status change.
func (g Gate) Transition(s models.Survey, to string) error {
	if s.Status == models.StatusExpired || g.Overdue(s) {
		return apperr.Gone(apperr.MsgStatusExpired)
	}
	switch to {
	case models.StatusPrivate, models.StatusPublic:
		return nil
	}
	return apperr.Validation(apperr.MsgStatusNotSettable, to)
}

// Listable reports whether a survey belongs in the public listing.
func (g Gate) Listable(s models.Survey) bool {
	return s.Status == models.StatusPublic && !g.Overdue(s)
}

// Locks reports whether an accepted submission that moved the counter from
// prev to prev+1 is the one that locks the survey.
func Locks(prev int) bool {
	return prev == 0
}

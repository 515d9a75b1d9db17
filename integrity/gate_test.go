package integrity

import (
	"testing"
	"time"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/models"
)

var gateNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func testGate() Gate {
	return NewGate(func() time.Time { return gateNow })
}

func TestGateAdmit(t *testing.T) {
	gate := testGate()

	tests := []struct {
		name    string
		survey  models.Survey
		wantErr bool
	}{
		{
			name:   "public survey before expiry",
			survey: models.Survey{Status: models.StatusPublic, ExpiresAt: gateNow.Add(time.Hour)},
		},
		{
			name:   "private survey before expiry",
			survey: models.Survey{Status: models.StatusPrivate, ExpiresAt: gateNow.Add(time.Hour)},
		},
		{
			name:   "locked survey still admits",
			survey: models.Survey{Status: models.StatusPublic, ExpiresAt: gateNow.Add(time.Hour), IsLocked: true, SubmissionCount: 5},
		},
		{
			name:    "expired status",
			survey:  models.Survey{Status: models.StatusExpired, ExpiresAt: gateNow.Add(time.Hour)},
			wantErr: true,
		},
		{
			name:    "overdue but status not yet expired",
			survey:  models.Survey{Status: models.StatusPublic, ExpiresAt: gateNow.Add(-time.Second)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.Admit(tt.survey)
			if tt.wantErr {
				if !apperr.Is(err, apperr.KindGone) {
					t.Errorf("Expected Gone, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Expected admission, got %v", err)
			}
		})
	}
}

func TestGateObserve(t *testing.T) {
	gate := testGate()

	overdue := models.Survey{Status: models.StatusPublic, ExpiresAt: gateNow.Add(-time.Minute)}
	if !gate.Observe(&overdue) {
		t.Error("Expected overdue survey to change")
	}
	if overdue.Status != models.StatusExpired {
		t.Errorf("Expected status expired, got %s", overdue.Status)
	}

	// Expired stays expired and reports no change.
	if gate.Observe(&overdue) {
		t.Error("Expected no change for already expired survey")
	}

	// Expired never reverts even if the expiry is pushed forward.
	overdue.ExpiresAt = gateNow.Add(time.Hour)
	gate.Observe(&overdue)
	if overdue.Status != models.StatusExpired {
		t.Errorf("Expired status reverted to %s", overdue.Status)
	}

	current := models.Survey{Status: models.StatusPrivate, ExpiresAt: gateNow.Add(time.Minute)}
	if gate.Observe(&current) {
		t.Error("Expected no change for current survey")
	}
	if current.Status != models.StatusPrivate {
		t.Errorf("Expected status private, got %s", current.Status)
	}
}

func TestGateTransition(t *testing.T) {
	gate := testGate()
	live := models.Survey{Status: models.StatusPrivate, ExpiresAt: gateNow.Add(time.Hour)}

	if err := gate.Transition(live, models.StatusPublic); err != nil {
		t.Errorf("private -> public: %v", err)
	}
	live.Status = models.StatusPublic
	if err := gate.Transition(live, models.StatusPrivate); err != nil {
		t.Errorf("public -> private: %v", err)
	}
	if err := gate.Transition(live, models.StatusExpired); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("manual expire: expected validation error, got %v", err)
	}
	if err := gate.Transition(live, "archived"); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("unknown status: expected validation error, got %v", err)
	}

	expired := models.Survey{Status: models.StatusExpired, ExpiresAt: gateNow.Add(time.Hour)}
	if err := gate.Transition(expired, models.StatusPublic); !apperr.Is(err, apperr.KindGone) {
		t.Errorf("expired -> public: expected Gone, got %v", err)
	}

	overdue := models.Survey{Status: models.StatusPrivate, ExpiresAt: gateNow.Add(-time.Hour)}
	if err := gate.Transition(overdue, models.StatusPublic); !apperr.Is(err, apperr.KindGone) {
		t.Errorf("overdue -> public: expected Gone, got %v", err)
	}
}

func TestGateListable(t *testing.T) {
	gate := testGate()

	tests := []struct {
		name   string
		survey models.Survey
		want   bool
	}{
		{"public current", models.Survey{Status: models.StatusPublic, ExpiresAt: gateNow.Add(time.Hour)}, true},
		{"public overdue", models.Survey{Status: models.StatusPublic, ExpiresAt: gateNow.Add(-time.Hour)}, false},
		{"private current", models.Survey{Status: models.StatusPrivate, ExpiresAt: gateNow.Add(time.Hour)}, false},
		{"expired", models.Survey{Status: models.StatusExpired, ExpiresAt: gateNow.Add(-time.Hour)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gate.Listable(tt.survey); got != tt.want {
				t.Errorf("Listable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLocks(t *testing.T) {
	if !Locks(0) {
		t.Error("Expected first submission to lock")
	}
	if Locks(1) || Locks(7) {
		t.Error("Expected later submissions not to lock")
	}
}

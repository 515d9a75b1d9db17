// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sweeper_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/service"
	"github.com/danielhkuo/quickly-survey/sweeper"
	"github.com/danielhkuo/quickly-survey/testutil"
)

type countingStep struct {
	calls atomic.Int32
	err   error
}

func (c *countingStep) ExpireOverdue(context.Context) (int64, error) {
	c.calls.Add(1)
	return 1, c.err
}

func (c *countingStep) PurgeFingerprints(context.Context) (int64, error) {
	c.calls.Add(1)
	return 1, c.err
}

func TestSweep_ContinuesAfterFailure(t *testing.T) {
	failing := &countingStep{err: errors.New("store down")}
	purge := &countingStep{}

	sweeper.Sweep(context.Background(), failing, purge)

	if failing.calls.Load() != 1 || purge.calls.Load() != 1 {
		t.Errorf("Expected both steps to run once, got %d and %d", failing.calls.Load(), purge.calls.Load())
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	step := &countingStep{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx, 5*time.Millisecond, step, step)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for step.calls.Load() < 4 {
		select {
		case <-deadline:
			t.Fatalf("Expected at least two sweeps, got %d calls", step.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected Run to return after cancel")
	}
}

func TestSweep_Store(t *testing.T) {
	store := testutil.SetupTestStore(t)
	overdue := testutil.CreateTestSurvey(t, store, "owner-1", testutil.WithExpiry(time.Now().Add(-time.Hour)))
	open := testutil.CreateTestSurvey(t, store, "owner-1")

	svc := service.New(store, 0, time.Hour)

	sweeper.Sweep(context.Background(), svc.Surveys, svc.Submissions)

	ctx := context.Background()
	got, err := store.Queries().GetSurvey(ctx, overdue.ID)
	if err != nil {
		t.Fatalf("Failed to load survey: %v", err)
	}
	if got.Status != models.StatusExpired {
		t.Errorf("Expected overdue survey to be expired, got %s", got.Status)
	}

	got, err = store.Queries().GetSurvey(ctx, open.ID)
	if err != nil {
		t.Fatalf("Failed to load survey: %v", err)
	}
	if got.Status != models.StatusPublic {
		t.Errorf("Expected open survey to stay public, got %s", got.Status)
	}
}

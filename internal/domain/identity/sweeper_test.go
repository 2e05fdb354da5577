package identity

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSweeperLiftsExpiredSuspension(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return base })

	u, _ := svc.Register(ctx, "ana@clinic.org", "s3cretpass", "PATIENT")
	if _, err := svc.Suspend(ctx, u.ID, 1, UnitHours); err != nil {
		t.Fatalf("Suspend: %v", err)
	}
	svc.SetClock(func() time.Time { return base.Add(2 * time.Hour) })

	sweeper := NewSweeper(svc, 10*time.Millisecond, zerolog.Nop())
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		sweeper.Start(runCtx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for {
		got, err := svc.GetUser(ctx, u.ID)
		if err != nil {
			t.Fatalf("GetUser: %v", err)
		}
		if got.Enabled {
			break
		}
		select {
		case <-deadline:
			t.Fatal("sweeper did not reactivate the user in time")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("sweeper did not stop on context cancel")
	}
}

package recorder

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestClockStartStop(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	current := base
	c := NewClock("/tmp/take.wav")
	c.now = func() time.Time { return current }

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !c.Recording() {
		t.Fatal("expected recording after start")
	}

	current = base.Add(90 * time.Second)
	if got := c.Elapsed(); got != 90*time.Second {
		t.Fatalf("elapsed = %v, want 90s", got)
	}

	take, err := c.Stop()
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if take.Duration != 90*time.Second {
		t.Fatalf("duration = %v, want 90s", take.Duration)
	}
	if !take.StartedAt.Equal(base) {
		t.Fatalf("startedAt = %v, want %v", take.StartedAt, base)
	}
	if take.AudioPath != "/tmp/take.wav" {
		t.Fatalf("audioPath = %q", take.AudioPath)
	}
	if c.Recording() {
		t.Fatal("expected idle after stop")
	}
}

func TestClockDoubleStart(t *testing.T) {
	c := NewClock("")
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := c.Start(context.Background()); !errors.Is(err, ErrAlreadyRecording) {
		t.Fatalf("second start err = %v, want ErrAlreadyRecording", err)
	}
}

func TestClockStopIdle(t *testing.T) {
	c := NewClock("")
	if _, err := c.Stop(); !errors.Is(err, ErrNotRecording) {
		t.Fatalf("stop err = %v, want ErrNotRecording", err)
	}
	if err := c.Cancel(); !errors.Is(err, ErrNotRecording) {
		t.Fatalf("cancel err = %v, want ErrNotRecording", err)
	}
}

func TestClockCancel(t *testing.T) {
	c := NewClock("")
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := c.Cancel(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if c.Recording() {
		t.Fatal("expected idle after cancel")
	}
	if got := c.Elapsed(); got != 0 {
		t.Fatalf("elapsed after cancel = %v, want 0", got)
	}
}

func TestClockStartCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewClock("")
	if err := c.Start(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("start err = %v, want context.Canceled", err)
	}
}

// Package recorder tracks practice takes. This build ships no capture
// pipeline: the Clock recorder times the take against the wall clock and
// attaches a pre-recorded audio file when one is configured.
package recorder

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrAlreadyRecording = errors.New("recorder: already recording")
	ErrNotRecording     = errors.New("recorder: not recording")
)

// Take is one recorded practice attempt.
type Take struct {
	StartedAt time.Time
	Duration  time.Duration
	AudioPath string
}

// Recorder is the capture port used by the practice flow.
type Recorder interface {
	Start(ctx context.Context) error
	Stop() (Take, error)
	Cancel() error
	Elapsed() time.Duration
	Recording() bool
}

// Clock is the wall-clock Recorder.
type Clock struct {
	mu        sync.Mutex
	takePath  string
	startedAt time.Time
	recording bool
	now       func() time.Time
}

func NewClock(takePath string) *Clock {
	return &Clock{takePath: takePath, now: time.Now}
}

func (c *Clock) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recording {
		return ErrAlreadyRecording
	}
	c.recording = true
	c.startedAt = c.now()
	return nil
}

func (c *Clock) Stop() (Take, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.recording {
		return Take{}, ErrNotRecording
	}
	c.recording = false
	return Take{
		StartedAt: c.startedAt,
		Duration:  c.now().Sub(c.startedAt),
		AudioPath: c.takePath,
	}, nil
}

func (c *Clock) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.recording {
		return ErrNotRecording
	}
	c.recording = false
	return nil
}

func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.recording {
		return 0
	}
	return c.now().Sub(c.startedAt)
}

func (c *Clock) Recording() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recording
}

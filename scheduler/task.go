package scheduler

import (
	"context"
	"errors"
	"time"
)

// Status is the lifecycle state of a pair task
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped" // completed with nothing to do
	StatusFailed    Status = "failed"
)

// Terminal reports whether the task has finished for good
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusSkipped || s == StatusFailed
}

// Task is one consecutive pair (Index-1, Index) of a sequence
type Task[T any] struct {
	Index       int
	Previous    T
	Current     T
	IsFirstPair bool
}

// Handler processes a single pair. report sends a progress line to the coordinator.
// Returning a Skip error marks the pair skipped, any other error marks it failed.
type Handler[T any] func(ctx context.Context, task Task[T], report func(message string)) error

// SkipError tells the scheduler a pair was intentionally not processed
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string {
	return "skipped: " + e.Reason
}

// Skip returns an error that marks the current pair as skipped
func Skip(reason string) error {
	return &SkipError{Reason: reason}
}

// IsSkip reports whether err marks a skipped pair and returns the reason
func IsSkip(err error) (string, bool) {
	var se *SkipError
	if errors.As(err, &se) {
		return se.Reason, true
	}
	return "", false
}

// Result is the terminal report of one pair task
type Result struct {
	Index    int
	WorkerID int
	Label    string
	Status   Status
	Reason   string // skip reason
	Err      error
	Duration time.Duration
}

// Summary describes a finished batch
type Summary struct {
	Pairs     int
	Workers   int
	Finished  int
	Succeeded int
	Skipped   int
	Failed    int
	Duration  time.Duration
	Results   []Result // ordered by pair index
}

// Package common provides small shared helpers used across pipeline stages.
package common

import (
	"fmt"
	"time"
)

// Timer measures the wall-clock duration of a pipeline stage. Stage
// metrics are reported in milliseconds, so the timer exposes the
// elapsed time both as a time.Duration and as a float64 ms value.
type Timer struct {
	start    time.Time
	name     string
	duration time.Duration
}

// NewTimer starts an unnamed timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// NewNamedTimer starts a timer labeled with a stage name.
func NewNamedTimer(name string) *Timer {
	return &Timer{
		name:  name,
		start: time.Now(),
	}
}

// Stop records the elapsed duration and returns it.
func (t *Timer) Stop() time.Duration {
	t.duration = time.Since(t.start)
	return t.duration
}

// StopMS stops the timer and returns the elapsed time in milliseconds.
func (t *Timer) StopMS() float64 {
	return durationMS(t.Stop())
}

// Duration returns the recorded duration (only valid after Stop).
func (t *Timer) Duration() time.Duration {
	return t.duration
}

// ElapsedMS returns the recorded duration in milliseconds.
func (t *Timer) ElapsedMS() float64 {
	return durationMS(t.duration)
}

// Name returns the timer name (empty string if unnamed).
func (t *Timer) Name() string {
	return t.name
}

// String formats the timer for log output.
func (t *Timer) String() string {
	if t.name != "" {
		return fmt.Sprintf("%s: %.3fms", t.name, durationMS(t.duration))
	}
	return fmt.Sprintf("%.3fms", durationMS(t.duration))
}

func durationMS(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

package service

import (
	"context"
	"time"
)

// AuthEventRecorder receives one event per register/login attempt.
// Outcomes are "success", "invalid", "duplicate", "unauthorized" and "error".
type AuthEventRecorder interface {
	RecordAuthEvent(event, outcome string)
}

type noopRecorder struct{}

func (noopRecorder) RecordAuthEvent(string, string) {}

type options struct {
	queryTimeout time.Duration
	now          func() time.Time
	events       AuthEventRecorder
}

// Option customizes a service.
type Option func(*options)

// WithQueryTimeout bounds each unit of work. Zero disables the bound.
func WithQueryTimeout(d time.Duration) Option {
	return func(o *options) { o.queryTimeout = d }
}

// WithClock replaces time.Now for timestamps assigned by the service.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithAuthEvents sets the recorder for authentication outcomes.
func WithAuthEvents(r AuthEventRecorder) Option {
	return func(o *options) {
		if r != nil {
			o.events = r
		}
	}
}

func newOptions(opts []Option) options {
	o := options{now: time.Now, events: noopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, o.queryTimeout)
}

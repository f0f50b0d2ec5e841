package metrics

import (
	"context"
	"time"
)

// Recorder receives service and transport measurements
type Recorder interface {
	RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration)
	RecordGenerationDuration(ctx context.Context, duration time.Duration, success bool)
	RecordCacheLookup(ctx context.Context, backend string, hit bool)
}

// Multi fans every measurement out to all recorders
type Multi []Recorder

func (m Multi) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	for _, r := range m {
		r.RecordAPIRequest(ctx, endpoint, statusCode, duration)
	}
}

func (m Multi) RecordGenerationDuration(ctx context.Context, duration time.Duration, success bool) {
	for _, r := range m {
		r.RecordGenerationDuration(ctx, duration, success)
	}
}

func (m Multi) RecordCacheLookup(ctx context.Context, backend string, hit bool) {
	for _, r := range m {
		r.RecordCacheLookup(ctx, backend, hit)
	}
}

// Nop discards everything
type Nop struct{}

func (Nop) RecordAPIRequest(context.Context, string, int, time.Duration)  {}
func (Nop) RecordGenerationDuration(context.Context, time.Duration, bool) {}
func (Nop) RecordCacheLookup(context.Context, string, bool)               {}

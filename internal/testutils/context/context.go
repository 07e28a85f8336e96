package context

import (
	"context"
	"testing"
	"time"
)

// WithTest returns a context which is canceled when the test ends.
//
// If the test has a deadline, the context expires 1 second before that,
// to be able to clean-up resources.
func WithTest(t *testing.T) context.Context {
	deadline, ok := t.Deadline()
	if !ok {
		ctx, cancel := context.WithCancel(context.Background())
		t.Cleanup(cancel)
		return ctx
	}
	ctx, cancel := context.WithDeadline(context.Background(), deadline.Add(-time.Second))
	t.Cleanup(cancel)
	return ctx
}

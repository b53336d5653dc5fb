package tracing

import (
	"context"
	"testing"
)

func TestEnsureTraceID(t *testing.T) {
	ctx, id := EnsureTraceID(context.Background())
	if id == "" {
		t.Fatalf("expected generated trace id")
	}
	if got := GetTraceID(ctx); got != id {
		t.Errorf("expected %q in context, got %q", id, got)
	}

	same, again := EnsureTraceID(ctx)
	if again != id || GetTraceID(same) != id {
		t.Errorf("expected existing trace id to be kept")
	}
}

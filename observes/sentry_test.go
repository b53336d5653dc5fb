package observes

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/tracing"
)

func TestNewSentryWithoutDSN(t *testing.T) {
	flush, err := NewSentry(&SentryOptions{})
	if err != nil {
		t.Fatalf("NewSentry: %v", err)
	}
	flush()
	if _, err := NewSentry(nil); err != nil {
		t.Fatalf("NewSentry(nil): %v", err)
	}
}

func TestReportable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{ecode.Validation("bad", nil), false},
		{ecode.Auth("nope", nil), false},
		{ecode.API(404, 0, "gone"), false},
		{ecode.API(500, 0, "boom"), true},
		{ecode.Network("down", nil), true},
		{ecode.Upload(403, nil), true},
		{errors.New("plain"), true},
	}
	for _, c := range cases {
		if got := Reportable(c.err); got != c.want {
			t.Errorf("Reportable(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}

func TestReportTagsEvent(t *testing.T) {
	var (
		mu     sync.Mutex
		events []*sentry.Event
	)
	_, err := NewSentry(&SentryOptions{
		Dsn: "https://public@sentry.example.com/1",
		BeforeSend: func(e *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			mu.Lock()
			events = append(events, e)
			mu.Unlock()
			return nil
		},
	})
	if err != nil {
		t.Fatalf("NewSentry: %v", err)
	}
	ctx := tracing.SetTraceID(context.Background(), "trace-1")

	Report(ctx, "posts list", ecode.Validation("ignored", nil))
	Report(ctx, "posts list", ecode.Network("api unavailable", errors.New("dial")))

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 1 {
		t.Fatalf("events = %d", len(events))
	}
	tags := events[0].Tags
	if tags["command"] != "posts list" || tags["kind"] != "network" || tags["trace_id"] != "trace-1" {
		t.Fatalf("tags = %v", tags)
	}
}

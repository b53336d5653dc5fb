// Package observes reports failures to Sentry.
package observes

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/tracing"
)

// FlushTimeout bounds how long pending events are sent on shutdown.
const FlushTimeout = 2 * time.Second

// SentryOptions configures the error reporter. An empty Dsn disables it.
type SentryOptions struct {
	Dsn         string
	Name        string
	Release     string
	Environment string
	SampleRate  float64
	// BeforeSend can drop or rewrite events before they are sent.
	BeforeSend func(*sentry.Event, *sentry.EventHint) *sentry.Event
}

// NewSentry registers the global sentry client. It returns a flush func;
// without a DSN it does nothing.
func NewSentry(opt *SentryOptions) (func(), error) {
	if opt == nil || opt.Dsn == "" {
		return func() {}, nil
	}
	rate := opt.SampleRate
	if rate <= 0 {
		rate = 1.0
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              opt.Dsn,
		AttachStacktrace: true,
		SampleRate:       rate,
		ServerName:       opt.Name,
		Release:          opt.Release,
		Environment:      opt.Environment,
		BeforeSend:       opt.BeforeSend,
	})
	if err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(FlushTimeout) }, nil
}

// Reportable reports whether err is worth an event. Input and credential
// errors are the user's and are not reported.
func Reportable(err error) bool {
	if err == nil {
		return false
	}
	switch ecode.KindOf(err) {
	case ecode.KindValidation, ecode.KindAuth, ecode.KindNotFound:
		return false
	}
	return true
}

// Report captures err with its kind and the trace id of ctx.
func Report(ctx context.Context, command string, err error) {
	if !Reportable(err) {
		return
	}
	hub := sentry.CurrentHub().Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("command", command)
		scope.SetTag("kind", ecode.KindOf(err).String())
		if id := tracing.GetTraceID(ctx); id != "" {
			scope.SetTag("trace_id", id)
		}
		hub.CaptureException(err)
	})
}

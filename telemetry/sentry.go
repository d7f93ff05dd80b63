// Package telemetry reports server errors to Sentry when a DSN is configured.
package telemetry

import (
	"fmt"
	"regexp"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
)

var enabled atomic.Bool

var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// Options configures the SDK. Transport is only set by tests.
type Options struct {
	DSN         string
	Environment string
	Release     string
	Transport   sentry.Transport
}

// Init starts error reporting. With no DSN and no transport it does nothing
// and returns false.
func Init(opts Options) (bool, error) {
	if opts.DSN == "" && opts.Transport == nil {
		enabled.Store(false)
		return false, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         opts.DSN,
		Environment: opts.Environment,
		Release:     opts.Release,
		Transport:   opts.Transport,
		SampleRate:  1.0,
		BeforeSend:  scrub,
	})
	if err != nil {
		return false, fmt.Errorf("sentry initialization failed: %w", err)
	}
	enabled.Store(true)
	return true, nil
}

// Enabled reports whether Init turned reporting on.
func Enabled() bool { return enabled.Load() }

// CaptureError sends err tagged with the component that failed, usually the
// route pattern.
func CaptureError(err error, component string) {
	if err == nil || !enabled.Load() {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("component", component)
		scope.SetFingerprint([]string{component, fmt.Sprintf("%T", err)})

		event := sentry.NewEvent()
		event.Level = sentry.LevelError
		event.Message = err.Error()
		event.Exception = []sentry.Exception{{
			Type:  fmt.Sprintf("%T", err),
			Value: err.Error(),
		}}
		sentry.CaptureEvent(event)
	})
}

// Flush waits for queued events. It is a no-op when reporting is off.
func Flush(timeout time.Duration) {
	if enabled.Load() {
		sentry.Flush(timeout)
	}
}

// scrub removes request data and email addresses before an event leaves.
func scrub(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	event.User = sentry.User{}
	event.Request = nil
	event.Message = ScrubMessage(event.Message)
	for i := range event.Exception {
		event.Exception[i].Value = ScrubMessage(event.Exception[i].Value)
	}
	return event
}

// ScrubMessage masks email addresses.
func ScrubMessage(msg string) string {
	return emailPattern.ReplaceAllString(msg, "[email]")
}

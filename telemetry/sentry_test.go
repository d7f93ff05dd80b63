package telemetry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTransport struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (t *recordingTransport) Configure(sentry.ClientOptions) {}

func (t *recordingTransport) SendEvent(event *sentry.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, event)
}

func (t *recordingTransport) Flush(time.Duration) bool { return true }

func (t *recordingTransport) FlushWithContext(context.Context) bool { return true }

func (t *recordingTransport) Close() {}

func (t *recordingTransport) Events() []*sentry.Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*sentry.Event(nil), t.events...)
}

// initForTesting turns reporting on with an in-memory transport.
func initForTesting(t *testing.T) *recordingTransport {
	t.Helper()
	transport := &recordingTransport{}
	ok, err := Init(Options{Environment: "test", Transport: transport})
	require.NoError(t, err)
	require.True(t, ok)
	t.Cleanup(func() {
		enabled.Store(false)
		sentry.CurrentHub().BindClient(nil)
	})
	return transport
}

func TestInitWithoutDSNIsDisabled(t *testing.T) {
	ok, err := Init(Options{Environment: "production"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, Enabled())

	CaptureError(errors.New("ignored"), "GET /api/content/:resource")
	Flush(time.Millisecond)
}

func TestCaptureError(t *testing.T) {
	transport := initForTesting(t)

	CaptureError(errors.New("create user budi@example.co.id: connection reset"), "POST /api/request-reset")
	CaptureError(nil, "ignored")
	Flush(time.Second)

	events := transport.Events()
	require.Len(t, events, 1)
	ev := events[0]
	assert.Equal(t, sentry.LevelError, ev.Level)
	assert.Equal(t, "POST /api/request-reset", ev.Tags["component"])
	assert.Equal(t, "create user [email]: connection reset", ev.Message)
	require.Len(t, ev.Exception, 1)
	assert.Equal(t, "create user [email]: connection reset", ev.Exception[0].Value)
	assert.Equal(t, "test", ev.Environment)
}

func TestScrubMessage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"no address here", "no address here"},
		{"user a.b+c@mail.example.com not found", "user [email] not found"},
		{"x@y.co and z@w.org", "[email] and [email]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScrubMessage(tt.in))
	}
}

package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"cms-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeIdentity struct {
	known        map[string]bool
	link         string
	linkErr      error
	createErr    error
	linkCalls    []string
	createCalls  []string
	lastPassword string
	configured   bool
}

func newFakeIdentity(link string, known ...string) *fakeIdentity {
	f := &fakeIdentity{known: map[string]bool{}, link: link, configured: true}
	for _, k := range known {
		f.known[k] = true
	}
	return f
}

func (f *fakeIdentity) Configured() bool { return f.configured }

func (f *fakeIdentity) GenerateLink(_ context.Context, email, _ string) (string, error) {
	f.linkCalls = append(f.linkCalls, email)
	if f.linkErr != nil {
		return "", f.linkErr
	}
	if !f.known[email] {
		return "", ErrUserNotFound
	}
	return f.link, nil
}

func (f *fakeIdentity) CreateUser(_ context.Context, email, password string) error {
	f.createCalls = append(f.createCalls, email)
	f.lastPassword = password
	if f.createErr != nil {
		return f.createErr
	}
	f.known[email] = true
	return nil
}

type fakeMailer struct {
	sent       []utils.Message
	err        error
	configured bool
}

func (m *fakeMailer) Configured() bool { return m.configured }

func (m *fakeMailer) Send(_ context.Context, msg utils.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

const recoveryLink = "https://auth.example.net/auth/v1/verify?token=abc123&type=recovery&redirect_to=https%3A%2F%2Fsite.example%2Freset-password"

func TestRequestResetKnownUser(t *testing.T) {
	id := newFakeIdentity(recoveryLink, "budi@nusantarafarma.co.id")
	mail := &fakeMailer{configured: true}
	svc := NewResetService(id, mail, "https://site.example", "Nusantara Farma", zap.NewNop())

	res, err := svc.RequestReset(context.Background(), "  Budi@NusantaraFarma.co.id ")
	require.NoError(t, err)
	assert.False(t, res.Registered)
	assert.True(t, res.TokenFound)
	assert.Empty(t, id.createCalls)
	assert.Equal(t, []string{"budi@nusantarafarma.co.id"}, id.linkCalls)

	require.Len(t, mail.sent, 1)
	msg := mail.sent[0]
	assert.Equal(t, "budi@nusantarafarma.co.id", msg.To)

	want := "https://site.example/reset-password?" + url.Values{
		"email": {"budi@nusantarafarma.co.id"},
		"token": {"abc123"},
		"type":  {"recovery"},
	}.Encode()
	assert.Contains(t, msg.PlainBody, want)
	assert.Contains(t, msg.HTMLBody, strings.ReplaceAll(want, "&", "&amp;"))
}

func TestRequestResetUnknownUserRegistersOnceAndRetriesOnce(t *testing.T) {
	id := newFakeIdentity(recoveryLink)
	mail := &fakeMailer{configured: true}
	svc := NewResetService(id, mail, "https://site.example", "", nil)

	res, err := svc.RequestReset(context.Background(), "new.user@gmail.com")
	require.NoError(t, err)
	assert.True(t, res.Registered)

	assert.Equal(t, []string{"new.user@gmail.com"}, id.createCalls)
	assert.Equal(t, []string{"new.user@gmail.com", "new.user@gmail.com"}, id.linkCalls)
	assert.Len(t, id.lastPassword, 48, "24 random bytes, hex encoded")
	assert.Len(t, mail.sent, 1)
}

func TestRequestResetCreateFailureStops(t *testing.T) {
	id := newFakeIdentity(recoveryLink)
	id.createErr = errors.New("boom")
	mail := &fakeMailer{configured: true}
	svc := NewResetService(id, mail, "https://site.example", "", nil)

	_, err := svc.RequestReset(context.Background(), "new.user@gmail.com")
	require.Error(t, err)
	assert.Len(t, id.createCalls, 1)
	assert.Len(t, id.linkCalls, 1, "no retry after a failed registration")
	assert.Empty(t, mail.sent)
}

func TestRequestResetWithoutTokenMailsRawLink(t *testing.T) {
	raw := "https://auth.example.net/recover/xyz"
	id := newFakeIdentity(raw, "budi@nusantarafarma.co.id")
	mail := &fakeMailer{configured: true}
	svc := NewResetService(id, mail, "https://site.example", "", nil)

	res, err := svc.RequestReset(context.Background(), "budi@nusantarafarma.co.id")
	require.NoError(t, err, "success is reported even without a token")
	assert.False(t, res.TokenFound)
	require.Len(t, mail.sent, 1)
	assert.Contains(t, mail.sent[0].PlainBody, raw)
}

func TestRequestResetValidationAndConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid email", func(t *testing.T) {
		id := newFakeIdentity(recoveryLink)
		svc := NewResetService(id, &fakeMailer{configured: true}, "https://site.example", "", nil)
		for _, email := range []string{"", "plainaddress", "a@b", "two@@at.com"} {
			_, err := svc.RequestReset(ctx, email)
			assert.ErrorIs(t, err, ErrInvalidEmail, email)
		}
		assert.Empty(t, id.linkCalls)
	})

	t.Run("identity provider not configured", func(t *testing.T) {
		id := newFakeIdentity(recoveryLink)
		id.configured = false
		svc := NewResetService(id, &fakeMailer{configured: true}, "https://site.example", "", nil)
		_, err := svc.RequestReset(ctx, "budi@nusantarafarma.co.id")
		assert.ErrorIs(t, err, ErrMisconfigured)
		assert.Empty(t, id.linkCalls)
	})

	t.Run("mailer not configured", func(t *testing.T) {
		id := newFakeIdentity(recoveryLink)
		svc := NewResetService(id, &fakeMailer{}, "https://site.example", "", nil)
		_, err := svc.RequestReset(ctx, "budi@nusantarafarma.co.id")
		assert.ErrorIs(t, err, ErrMisconfigured)
	})

	t.Run("provider error", func(t *testing.T) {
		id := newFakeIdentity(recoveryLink)
		id.linkErr = &ProviderError{Status: 500, Message: "down"}
		svc := NewResetService(id, &fakeMailer{configured: true}, "https://site.example", "", nil)
		_, err := svc.RequestReset(ctx, "budi@nusantarafarma.co.id")
		var perr *ProviderError
		assert.True(t, errors.As(err, &perr))
		assert.Empty(t, id.createCalls)
	})
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		link string
		want string
	}{
		{"https://auth.example.net/verify?token=abc&type=recovery", "abc"},
		{"https://site.example/reset#access_token=xyz&type=recovery", "xyz"},
		{"https://site.example/reset?type=recovery", ""},
		{"::not a url", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractToken(tt.link), tt.link)
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"cms-backend/utils"

	"go.uber.org/zap"
)

// Mailer delivers one message.
type Mailer interface {
	Send(ctx context.Context, msg utils.Message) error
}

type configurable interface {
	Configured() bool
}

// ResetResult reports what happened during a reset request. Callers answer
// the client the same way whatever these flags say.
type ResetResult struct {
	Registered bool
	TokenFound bool
}

// ResetService sends password recovery emails. An address the identity
// provider does not know is registered once with a random password and the
// link request is retried.
type ResetService struct {
	identity IdentityProvider
	mailer   Mailer
	siteURL  string
	siteName string
	log      *zap.Logger
}

func NewResetService(identity IdentityProvider, mailer Mailer, siteURL, siteName string, log *zap.Logger) *ResetService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ResetService{
		identity: identity,
		mailer:   mailer,
		siteURL:  siteURL,
		siteName: siteName,
		log:      log.Named("reset"),
	}
}

func (s *ResetService) configured() bool {
	if s.identity == nil || s.mailer == nil {
		return false
	}
	if c, ok := s.identity.(configurable); ok && !c.Configured() {
		return false
	}
	if c, ok := s.mailer.(configurable); ok && !c.Configured() {
		return false
	}
	return true
}

func (s *ResetService) redirectURL() string {
	if s.siteURL == "" {
		return ""
	}
	return s.siteURL + "/reset-password"
}

func (s *ResetService) RequestReset(ctx context.Context, rawEmail string) (ResetResult, error) {
	var result ResetResult

	email, err := NormalizeEmail(rawEmail)
	if err != nil {
		return result, err
	}
	if !s.configured() {
		return result, ErrMisconfigured
	}

	link, err := s.identity.GenerateLink(ctx, email, s.redirectURL())
	if errors.Is(err, ErrUserNotFound) {
		s.log.Info("unknown address, registering before retry", zap.String("email", email))
		password, perr := utils.GenerateSecureToken(24)
		if perr != nil {
			return result, fmt.Errorf("generate temporary password: %w", perr)
		}
		if err := s.identity.CreateUser(ctx, email, password); err != nil {
			return result, fmt.Errorf("create user: %w", err)
		}
		result.Registered = true
		link, err = s.identity.GenerateLink(ctx, email, s.redirectURL())
	}
	if err != nil {
		return result, fmt.Errorf("generate recovery link: %w", err)
	}

	token := ExtractToken(link)
	result.TokenFound = token != ""

	target := link
	if token != "" && s.siteURL != "" {
		q := url.Values{}
		q.Set("token", token)
		q.Set("type", "recovery")
		q.Set("email", email)
		target = s.redirectURL() + "?" + q.Encode()
	}
	if !result.TokenFound {
		s.log.Warn("recovery link carried no token, mailing raw link", zap.String("email", email))
	}

	if err := s.mailer.Send(ctx, utils.ResetPasswordMessage(email, target, s.siteName)); err != nil {
		return result, fmt.Errorf("send reset email: %w", err)
	}
	return result, nil
}

// ExtractToken pulls the recovery token from an action link, looking at the
// query first and the fragment second.
func ExtractToken(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	if t := u.Query().Get("token"); t != "" {
		return t
	}
	if frag, err := url.ParseQuery(u.Fragment); err == nil {
		if t := frag.Get("access_token"); t != "" {
			return t
		}
	}
	return ""
}

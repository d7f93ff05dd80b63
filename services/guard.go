package services

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"cms-backend/utils"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

var (
	ErrBlocked  = errors.New("submission rejected")
	ErrCooldown = errors.New("submitted too recently")
	ErrCaptcha  = errors.New("incorrect captcha answer")
)

// DefaultCooldown is the minimum gap between two submissions of one client.
const DefaultCooldown = 30 * time.Second

type BlockedError struct {
	Field  string
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrBlocked, e.Field, e.Reason)
}

func (e *BlockedError) Unwrap() error { return ErrBlocked }

type CooldownError struct {
	RetryAfter time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s: retry in %s", ErrCooldown, e.RetryAfter.Round(time.Second))
}

func (e *CooldownError) Unwrap() error { return ErrCooldown }

// CaptchaError carries the replacement question the client must answer next.
type CaptchaError struct {
	Next Challenge
}

func (e *CaptchaError) Error() string { return ErrCaptcha.Error() }

func (e *CaptchaError) Unwrap() error { return ErrCaptcha }

var blockedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<\s*/?\s*script\b`),
	regexp.MustCompile(`(?i)<\s*(iframe|object|embed|svg|img|link|meta|style)\b`),
	regexp.MustCompile(`(?i)javascript\s*:`),
	regexp.MustCompile(`(?i)\bon(click|load|error|focus|blur|submit|change|mouse\w+|key\w+)\s*=`),
	regexp.MustCompile(`(?i)\bunion\s+(all\s+)?select\b`),
	regexp.MustCompile(`(?i)\binsert\s+into\s+\w+\s*(\(|values\b)`),
	regexp.MustCompile(`(?i)\bdelete\s+from\s+\w+\s*(where\b|;|$)`),
	regexp.MustCompile(`(?i)\bupdate\s+\w+\s+set\s+\w+\s*=`),
	regexp.MustCompile(`(?i)\b(drop|truncate|alter)\s+(table|database)\b`),
	regexp.MustCompile(`(?i)'\s*(or|and)\s+'?\w+'?\s*=\s*'?\w+`),
	regexp.MustCompile(`(?i);\s*(drop|delete|truncate|shutdown)\b`),
}

var dummyWords = map[string]bool{
	"test": true, "testing": true, "tes": true, "test123": true,
	"asdf": true, "asdfgh": true, "asdfghjkl": true, "qwerty": true, "qwe": true, "zxcv": true,
	"dummy": true, "sample": true, "contoh": true, "coba": true, "cobacoba": true,
	"lorem": true, "lorem ipsum": true, "abc": true, "abcd": true, "xyz": true,
	"123": true, "1234": true, "12345": true, "123456": true,
	"n/a": true, "na": true, "-": true, "...": true, "null": true, "undefined": true,
}

var dummyDomains = map[string]bool{
	"test.com": true, "example.com": true, "example.org": true, "mailinator.com": true, "test.test": true,
}

// Guard holds the spam heuristics shared by the public forms.
type Guard struct {
	cooldown time.Duration
	recent   *cache.Cache
}

func NewGuard(cooldown time.Duration) *Guard {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Guard{cooldown: cooldown, recent: cache.New(cooldown, time.Minute)}
}

// Honeypot reports whether the hidden field was filled in, which only bots do.
func (g *Guard) Honeypot(value string) bool {
	return strings.TrimSpace(value) != ""
}

// CheckFields rejects script or SQL payloads and obvious placeholder input.
// Empty values are skipped; required-ness is checked elsewhere.
func (g *Guard) CheckFields(fields map[string]string) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := strings.TrimSpace(fields[name])
		if value == "" {
			continue
		}
		for _, re := range blockedPatterns {
			if re.MatchString(value) {
				return &BlockedError{Field: name, Reason: "contains disallowed content"}
			}
		}
		if IsDummy(value) {
			return &BlockedError{Field: name, Reason: "looks like placeholder data"}
		}
	}
	return nil
}

// IsDummy reports input such as "test", "asdf" or "aaaa", and addresses like
// test@example.com.
func IsDummy(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return false
	}
	if dummyWords[v] || isRepeated(v) {
		return true
	}
	if local, domain, ok := strings.Cut(v, "@"); ok {
		return dummyWords[local] || dummyDomains[domain]
	}
	return false
}

// isRepeated reports strings of three or more copies of one character.
func isRepeated(v string) bool {
	runes := []rune(v)
	if len(runes) < 3 {
		return false
	}
	for _, r := range runes[1:] {
		if r != runes[0] {
			return false
		}
	}
	return true
}

// Remaining returns how long key must still wait, if at all.
func (g *Guard) Remaining(key string) (time.Duration, bool) {
	_, expires, found := g.recent.GetWithExpiration(key)
	if !found {
		return 0, false
	}
	left := time.Until(expires)
	if left <= 0 {
		return 0, false
	}
	return left, true
}

// Reserve starts the cooldown for key. It fails with the remaining wait when
// key is already cooling down.
func (g *Guard) Reserve(key string) (time.Duration, bool) {
	if err := g.recent.Add(key, struct{}{}, g.cooldown); err != nil {
		left, _ := g.Remaining(key)
		return left, false
	}
	return 0, true
}

// Release lifts a reservation, used when the guarded write failed.
func (g *Guard) Release(key string) {
	g.recent.Delete(key)
}

// Challenge is an arithmetic question; the answer stays server-side.
type Challenge struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}

// CaptchaStore issues single-use "a + b" questions with single-digit operands.
type CaptchaStore struct {
	mu      sync.Mutex
	answers *cache.Cache
}

func NewCaptchaStore(ttl time.Duration) *CaptchaStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CaptchaStore{answers: cache.New(ttl, time.Minute)}
}

func (s *CaptchaStore) New() (Challenge, error) {
	a, err := utils.RandomInt(1, 9)
	if err != nil {
		return Challenge{}, err
	}
	b, err := utils.RandomInt(1, 9)
	if err != nil {
		return Challenge{}, err
	}

	ch := Challenge{ID: uuid.NewString(), Question: fmt.Sprintf("%d + %d = ?", a, b)}
	s.answers.Set(ch.ID, a+b, cache.DefaultExpiration)
	return ch, nil
}

// Verify consumes the challenge whether or not the answer is right.
func (s *CaptchaStore) Verify(id, answer string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	want, found := s.answers.Get(id)
	if !found {
		return false
	}
	s.answers.Delete(id)

	got, err := strconv.Atoi(strings.TrimSpace(answer))
	return err == nil && got == want.(int)
}

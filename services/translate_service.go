package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/antonholmquist/jason"
	"github.com/patrickmn/go-cache"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"
)

var ErrTranslate = errors.New("translation failed")

const maxTranslateChars = 5000

// Translator fills the English twin of Indonesian fields through the public
// translation endpoint. Results are cached and outbound calls are throttled.
type Translator struct {
	endpoint string
	http     *http.Client
	cache    *cache.Cache
	limiter  *rate.Limiter
}

func NewTranslator(endpoint string, httpClient *http.Client) *Translator {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Translator{
		endpoint: endpoint,
		http:     httpClient,
		cache:    cache.New(24*time.Hour, time.Hour),
		limiter:  rate.NewLimiter(rate.Limit(5), 5),
	}
}

func languageCode(raw string, allowAuto bool) (string, error) {
	raw = strings.TrimSpace(raw)
	if allowAuto && strings.EqualFold(raw, "auto") {
		return "auto", nil
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: language %q", ErrInvalidPayload, raw)
	}
	base, _ := tag.Base()
	return base.String(), nil
}

// Translate returns text rendered from source into target.
func (t *Translator) Translate(ctx context.Context, text, source, target string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}
	if len(text) > maxTranslateChars {
		return "", fmt.Errorf("%w: text longer than %d characters", ErrInvalidPayload, maxTranslateChars)
	}
	sl, err := languageCode(source, true)
	if err != nil {
		return "", err
	}
	tl, err := languageCode(target, false)
	if err != nil {
		return "", err
	}
	if sl == tl {
		return text, nil
	}

	key := sl + "|" + tl + "|" + text
	if cached, found := t.cache.Get(key); found {
		return cached.(string), nil
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslate, err)
	}

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", sl)
	q.Set("tl", tl)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpoint+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslate, err)
	}
	resp, err := t.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslate, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrTranslate, resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslate, err)
	}

	out, err := parseTranslation(raw)
	if err != nil {
		return "", err
	}
	t.cache.Set(key, out, cache.DefaultExpiration)
	return out, nil
}

// TranslateFields translates every non-empty value. Fields that fail are left
// out of the result and reported in the joined error.
func (t *Translator) TranslateFields(ctx context.Context, fields map[string]string, source, target string) (map[string]string, error) {
	out := make(map[string]string, len(fields))
	var errs []error
	for name, text := range fields {
		translated, err := t.Translate(ctx, text, source, target)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		out[name] = translated
	}
	return out, errors.Join(errs...)
}

// parseTranslation concatenates the translated segments of a response shaped
// like [[["Hello","Halo",...],["world","dunia",...]],null,"id",...].
func parseTranslation(raw []byte) (string, error) {
	root, err := jason.NewValueFromBytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrTranslate, err)
	}
	top, err := root.Array()
	if err != nil || len(top) == 0 {
		return "", fmt.Errorf("%w: unexpected response shape", ErrTranslate)
	}
	segments, err := top[0].Array()
	if err != nil {
		return "", fmt.Errorf("%w: unexpected response shape", ErrTranslate)
	}

	var sb strings.Builder
	for _, seg := range segments {
		parts, err := seg.Array()
		if err != nil || len(parts) == 0 {
			continue
		}
		if s, err := parts[0].String(); err == nil {
			sb.WriteString(s)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: empty translation", ErrTranslate)
	}
	return sb.String(), nil
}

package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

var ErrUserNotFound = errors.New("user not found")

// ProviderError is a non-2xx answer from the identity provider.
type ProviderError struct {
	Status  int
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("identity provider: %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("identity provider: %d: %s", e.Status, e.Message)
}

// IdentityProvider is the subset of the hosted auth admin API the reset flow needs.
type IdentityProvider interface {
	GenerateLink(ctx context.Context, email, redirectTo string) (string, error)
	CreateUser(ctx context.Context, email, password string) error
}

// IdentityClient talks to the provider's admin endpoints with the service-role key.
type IdentityClient struct {
	baseURL    string
	serviceKey string
	http       *http.Client
}

func NewIdentityClient(baseURL, serviceRoleKey string, httpClient *http.Client) *IdentityClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &IdentityClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		serviceKey: strings.TrimSpace(serviceRoleKey),
		http:       httpClient,
	}
}

func (c *IdentityClient) Configured() bool {
	return c != nil && c.baseURL != "" && c.serviceKey != ""
}

type generateLinkRequest struct {
	Type       string `json:"type"`
	Email      string `json:"email"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

type generateLinkResponse struct {
	ActionLink string `json:"action_link"`
	Properties struct {
		ActionLink string `json:"action_link"`
	} `json:"properties"`
}

type createUserRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	EmailConfirm bool   `json:"email_confirm"`
}

type providerErrorBody struct {
	Code             any    `json:"code"`
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// GenerateLink asks for a recovery link and returns its action URL.
func (c *IdentityClient) GenerateLink(ctx context.Context, email, redirectTo string) (string, error) {
	var out generateLinkResponse
	req := generateLinkRequest{Type: "recovery", Email: email, RedirectTo: redirectTo}
	if err := c.post(ctx, "/auth/v1/admin/generate_link", req, &out); err != nil {
		return "", err
	}

	link := out.ActionLink
	if link == "" {
		link = out.Properties.ActionLink
	}
	if link == "" {
		return "", errors.New("identity provider returned no action link")
	}
	return link, nil
}

// CreateUser registers a confirmed account with the given password.
func (c *IdentityClient) CreateUser(ctx context.Context, email, password string) error {
	req := createUserRequest{Email: email, Password: password, EmailConfirm: true}
	return c.post(ctx, "/auth/v1/admin/users", req, nil)
}

func (c *IdentityClient) post(ctx context.Context, path string, in, out any) error {
	if !c.Configured() {
		return ErrMisconfigured
	}

	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read identity provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeProviderError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode identity provider response: %w", err)
	}
	return nil
}

func decodeProviderError(status int, raw []byte) error {
	var body providerErrorBody
	_ = json.Unmarshal(raw, &body)

	msg := firstNonEmpty(body.Msg, body.Message, body.ErrorDescription, body.Error, strings.TrimSpace(string(raw)))
	perr := &ProviderError{Status: status, Code: body.ErrorCode, Message: msg}

	lower := strings.ToLower(msg)
	if status == http.StatusNotFound || body.ErrorCode == "user_not_found" ||
		(strings.Contains(lower, "user") && strings.Contains(lower, "not found")) {
		return fmt.Errorf("%w: %w", ErrUserNotFound, perr)
	}
	return perr
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

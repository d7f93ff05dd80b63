package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings is the process configuration, read from the environment.
type Settings struct {
	Port           string
	CORSOrigins    []string
	SiteURL        string
	TranslateURL   string
	LogLevel       string
	LogDevelopment bool
	UploadDir      string

	JWTSecret          string
	JWTSecretGenerated bool
	JWTTTL             time.Duration
	AdminEmail         string
	AdminPassword      string

	DB       DatabaseSettings
	Identity IdentitySettings
	Mail     MailSettings
	Sentry   SentrySettings
}

// SentrySettings enables error reporting when DSN is set.
type SentrySettings struct {
	DSN         string
	Environment string
}

type DatabaseSettings struct {
	Driver     string
	URL        string
	User       string
	Password   string
	Host       string
	Port       string
	Name       string
	SQLitePath string
}

// IdentitySettings points at the hosted auth provider. The service-role key is
// required for admin operations such as generating recovery links.
type IdentitySettings struct {
	URL            string
	ServiceRoleKey string
}

type MailSettings struct {
	Host        string
	Port        string
	User        string
	AppPassword string
	FromName    string
}

// Configured reports whether enough is set to send mail.
func (m MailSettings) Configured() bool {
	return m.Host != "" && m.Port != "" && m.User != "" && m.AppPassword != ""
}

var defaults = map[string]any{
	"server.port":        "8080",
	"server.corsorigins": "*",
	"server.siteurl":     "http://localhost:5173",
	"translate.url":      "https://translate.googleapis.com/translate_a/single",
	"log.level":          "info",
	"log.development":    false,
	"server.uploaddir":   "uploads",
	"auth.jwtttl":        "12h",
	"db.driver":          "mysql",
	"db.host":            "127.0.0.1",
	"db.port":            "3306",
	"db.user":            "root",
	"db.name":            "company_cms",
	"db.sqlitepath":      "cms.db",
	"mail.host":          "smtp.gmail.com",
	"mail.port":          "587",
	"mail.fromname":      "Website",
	"sentry.environment": "production",
}

var envBindings = map[string][]string{
	"server.port":             {"PORT"},
	"server.corsorigins":      {"CORS_ORIGINS"},
	"server.siteurl":          {"SITE_URL"},
	"server.uploaddir":        {"UPLOAD_DIR"},
	"translate.url":           {"TRANSLATE_URL"},
	"log.level":               {"LOG_LEVEL"},
	"log.development":         {"LOG_DEVELOPMENT"},
	"auth.jwtsecret":          {"JWT_SECRET"},
	"auth.jwtttl":             {"JWT_TTL"},
	"auth.adminemail":         {"ADMIN_EMAIL"},
	"auth.adminpassword":      {"ADMIN_PASSWORD"},
	"db.driver":               {"DB_DRIVER"},
	"db.url":                  {"MYSQL_URL", "DATABASE_URL"},
	"db.user":                 {"DB_USER"},
	"db.password":             {"DB_PASS"},
	"db.host":                 {"DB_HOST"},
	"db.port":                 {"DB_PORT"},
	"db.name":                 {"DB_NAME"},
	"db.sqlitepath":           {"SQLITE_PATH"},
	"identity.url":            {"SUPABASE_URL"},
	"identity.servicerolekey": {"SUPABASE_SERVICE_ROLE_KEY"},
	"mail.host":               {"SMTP_HOST"},
	"mail.port":               {"SMTP_PORT"},
	"mail.user":               {"GMAIL_USER", "SMTP_USERNAME"},
	"mail.apppassword":        {"GMAIL_APP_PASSWORD", "SMTP_PASSWORD"},
	"mail.fromname":           {"SMTP_FROM_NAME"},
	"sentry.dsn":              {"SENTRY_DSN"},
	"sentry.environment":      {"SENTRY_ENVIRONMENT"},
}

// Load reads Settings from environment variables on top of the defaults.
func Load() (*Settings, error) {
	v := viper.New()
	for key, def := range defaults {
		v.SetDefault(key, def)
	}
	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	ttl, err := time.ParseDuration(strings.TrimSpace(v.GetString("auth.jwtttl")))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid JWT_TTL %q", v.GetString("auth.jwtttl"))
	}

	s := &Settings{
		Port:           strings.TrimSpace(v.GetString("server.port")),
		CORSOrigins:    splitOrigins(v.GetString("server.corsorigins")),
		SiteURL:        strings.TrimRight(strings.TrimSpace(v.GetString("server.siteurl")), "/"),
		TranslateURL:   strings.TrimSpace(v.GetString("translate.url")),
		LogLevel:       strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
		LogDevelopment: v.GetBool("log.development"),
		UploadDir:      strings.TrimSpace(v.GetString("server.uploaddir")),
		JWTSecret:      strings.TrimSpace(v.GetString("auth.jwtsecret")),
		JWTTTL:         ttl,
		AdminEmail:     strings.TrimSpace(v.GetString("auth.adminemail")),
		AdminPassword:  v.GetString("auth.adminpassword"),
		DB: DatabaseSettings{
			Driver:     strings.ToLower(strings.TrimSpace(v.GetString("db.driver"))),
			URL:        strings.TrimSpace(v.GetString("db.url")),
			User:       strings.TrimSpace(v.GetString("db.user")),
			Password:   v.GetString("db.password"),
			Host:       strings.TrimSpace(v.GetString("db.host")),
			Port:       strings.TrimSpace(v.GetString("db.port")),
			Name:       strings.TrimSpace(v.GetString("db.name")),
			SQLitePath: strings.TrimSpace(v.GetString("db.sqlitepath")),
		},
		Identity: IdentitySettings{
			URL:            strings.TrimRight(strings.TrimSpace(v.GetString("identity.url")), "/"),
			ServiceRoleKey: strings.TrimSpace(v.GetString("identity.servicerolekey")),
		},
		Mail: MailSettings{
			Host:        strings.TrimSpace(v.GetString("mail.host")),
			Port:        strings.TrimSpace(v.GetString("mail.port")),
			User:        strings.TrimSpace(v.GetString("mail.user")),
			AppPassword: strings.ReplaceAll(v.GetString("mail.apppassword"), " ", ""),
			FromName:    strings.TrimSpace(v.GetString("mail.fromname")),
		},
		Sentry: SentrySettings{
			DSN:         strings.TrimSpace(v.GetString("sentry.dsn")),
			Environment: strings.TrimSpace(v.GetString("sentry.environment")),
		},
	}

	switch s.DB.Driver {
	case "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", s.DB.Driver)
	}

	if s.JWTSecret == "" {
		secret, err := randomSecret(32)
		if err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		s.JWTSecret = secret
		s.JWTSecretGenerated = true
	}

	return s, nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func randomSecret(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

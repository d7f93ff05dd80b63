package utils

import (
	"context"
	"errors"
	"fmt"
	"html"
	"mime"
	"net/smtp"
	"strings"
)

var ErrMailerNotConfigured = errors.New("mailer not configured")

// Message is one outgoing email with a plain-text and an HTML part.
type Message struct {
	To        string
	Subject   string
	PlainBody string
	HTMLBody  string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends mail through an authenticated relay such as Gmail with an
// app password.
type SMTPMailer struct {
	host     string
	port     string
	user     string
	password string
	fromName string
	send     sendFunc
}

func NewSMTPMailer(host, port, user, password, fromName string) *SMTPMailer {
	return &SMTPMailer{
		host:     strings.TrimSpace(host),
		port:     strings.TrimSpace(port),
		user:     strings.TrimSpace(user),
		password: password,
		fromName: strings.TrimSpace(fromName),
		send:     smtp.SendMail,
	}
}

func (m *SMTPMailer) Configured() bool {
	return m != nil && m.host != "" && m.port != "" && m.user != "" && m.password != ""
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if !m.Configured() {
		return ErrMailerNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	to := stripCRLF(msg.To)
	if to == "" {
		return errors.New("recipient required")
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	if err := m.send(addr, auth, m.user, []string{to}, m.build(to, msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func (m *SMTPMailer) build(to string, msg Message) []byte {
	const boundary = "----=_CMS_MAIL_BOUNDARY"

	from := m.user
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", m.fromName), m.user)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", stripCRLF(msg.Subject))))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(msg.PlainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(msg.HTMLBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	return []byte(sb.String())
}

func stripCRLF(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(strings.TrimSpace(s))
}

// ResetPasswordMessage renders the password recovery email.
func ResetPasswordMessage(to, link, siteName string) Message {
	link = stripCRLF(link)
	if siteName == "" {
		siteName = "our website"
	}

	plain := fmt.Sprintf(
		"Hello,\n\n"+
			"We received a request to reset the password for your %s account.\n"+
			"Open the link below to choose a new password:\n%s\n\n"+
			"If you did not request this, you can ignore this email.\n",
		siteName, link,
	)

	body := fmt.Sprintf(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Reset password</title>
<style>
body { background:#f5f7fb; font-family:Arial, Helvetica, sans-serif; color:#222; }
.container { max-width:640px; margin:20px auto; }
.card { background:#fff; border:1px solid #e6eef6; padding:24px; border-radius:8px; }
.btn { display:inline-block; padding:12px 20px; background:#0b74ff; color:#fff; text-decoration:none; border-radius:6px; margin-top:16px; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h2>Reset your password</h2>
    <p>We received a request to reset the password for your %s account.</p>
    <a class="btn" href="%s" target="_blank">Choose a new password</a>
    <p>If you did not request this, you can ignore this email.</p>
  </div>
</div>
</body>
</html>`,
		html.EscapeString(siteName), html.EscapeString(link),
	)

	return Message{
		To:        to,
		Subject:   "Reset your password",
		PlainBody: plain,
		HTMLBody:  body,
	}
}

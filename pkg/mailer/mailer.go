// Package mailer sends the transactional emails of the auth flows: password
// reset links and signup OTP codes.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"cryptnote-backend/pkg/metrics"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

const (
	KindPasswordReset = "password_reset"
	KindSignupOTP     = "signup_otp"
)

// Message is a rendered email ready for a Sender.
type Message struct {
	Kind    string
	To      string
	Subject string
	HTML    string
}

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Mailer renders templates and hands the result to a Sender.
type Mailer struct {
	sender  Sender
	appName string
	metrics metrics.Recorder
}

func New(sender Sender, appName string, rec metrics.Recorder) *Mailer {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Mailer{
		sender:  sender,
		appName: appName,
		metrics: rec,
	}
}

// SendPasswordReset emails the reset link to the account owner.
func (m *Mailer) SendPasswordReset(ctx context.Context, to, resetURL string, validFor time.Duration) error {
	body, err := m.render("password_reset.html", map[string]any{
		"AppName":  m.appName,
		"ResetURL": resetURL,
		"Validity": humanize(validFor),
	})
	if err != nil {
		return err
	}
	return m.send(ctx, Message{
		Kind:    KindPasswordReset,
		To:      to,
		Subject: fmt.Sprintf("Reset Your %s Password", m.appName),
		HTML:    body,
	})
}

// SendSignupOTP emails a signup verification code.
func (m *Mailer) SendSignupOTP(ctx context.Context, to, code string, validFor time.Duration) error {
	body, err := m.render("signup_otp.html", map[string]any{
		"AppName":  m.appName,
		"Code":     code,
		"Validity": humanize(validFor),
	})
	if err != nil {
		return err
	}
	return m.send(ctx, Message{
		Kind:    KindSignupOTP,
		To:      to,
		Subject: fmt.Sprintf("%s Signup OTP Verification", m.appName),
		HTML:    body,
	})
}

func (m *Mailer) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func (m *Mailer) send(ctx context.Context, msg Message) error {
	if err := m.sender.Send(ctx, msg); err != nil {
		m.metrics.RecordEmailFailed(msg.Kind)
		return fmt.Errorf("send %s email: %w", msg.Kind, err)
	}
	m.metrics.RecordEmailSent(msg.Kind)
	return nil
}

func humanize(d time.Duration) string {
	if d%time.Hour == 0 && d >= time.Hour {
		n := int(d / time.Hour)
		if n == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", n)
	}
	n := int(d / time.Minute)
	if n == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", n)
}

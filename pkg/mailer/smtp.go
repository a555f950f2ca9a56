package mailer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/emersion/go-message/mail"
)

// SMTPSettings configures an authenticated SMTP relay such as Gmail.
type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
}

// SMTPSender delivers messages over SMTP with PLAIN auth.
type SMTPSender struct {
	settings SMTPSettings
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(s SMTPSettings) *SMTPSender {
	return &SMTPSender{
		settings: s,
		sendMail: smtp.SendMail,
	}
}

// Send composes msg as MIME and relays it. The SMTP exchange itself cannot be
// cancelled, so ctx only bounds how long the caller waits for it.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	raw, err := Compose(&mail.Address{Name: s.settings.FromName, Address: s.settings.Username}, msg, time.Now())
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(s.settings.Host, strconv.Itoa(s.settings.Port))
	auth := smtp.PlainAuth("", s.settings.Username, s.settings.Password, s.settings.Host)

	done := make(chan error, 1)
	go func() {
		done <- s.sendMail(addr, auth, s.settings.Username, []string{msg.To}, raw)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Compose renders msg as a single-part text/html MIME message.
func Compose(from *mail.Address, msg Message, now time.Time) ([]byte, error) {
	var h mail.Header
	h.SetDate(now)
	h.SetAddressList("From", []*mail.Address{from})
	h.SetAddressList("To", []*mail.Address{{Address: msg.To}})
	h.SetSubject(msg.Subject)
	h.SetContentType("text/html", map[string]string{"charset": "utf-8"})
	if err := h.GenerateMessageID(); err != nil {
		return nil, fmt.Errorf("generate message id: %w", err)
	}

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("create mime writer: %w", err)
	}
	if _, err := io.WriteString(w, msg.HTML); err != nil {
		return nil, fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close mime writer: %w", err)
	}
	return buf.Bytes(), nil
}

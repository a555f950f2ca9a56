package mailer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/smtp"
	"testing"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptnote-backend/pkg/metrics"
)

func TestMailer_SendPasswordReset(t *testing.T) {
	sender := NewMemorySender()
	m := New(sender, "Crypt Note", nil)

	err := m.SendPasswordReset(context.Background(), "a@x.com", "https://app.example.com/resetpassword/abc123", 15*time.Minute)
	require.NoError(t, err)

	msg, ok := sender.Last()
	require.True(t, ok)
	assert.Equal(t, KindPasswordReset, msg.Kind)
	assert.Equal(t, "a@x.com", msg.To)
	assert.Equal(t, "Reset Your Crypt Note Password", msg.Subject)
	assert.Contains(t, msg.HTML, `href="https://app.example.com/resetpassword/abc123"`)
	assert.Contains(t, msg.HTML, "15 minutes")
}

func TestMailer_SendSignupOTP(t *testing.T) {
	sender := NewMemorySender()
	m := New(sender, "Crypt Note", nil)

	require.NoError(t, m.SendSignupOTP(context.Background(), "b@x.com", "482913", 5*time.Minute))

	msgs := sender.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Crypt Note Signup OTP Verification", msgs[0].Subject)
	assert.Contains(t, msgs[0].HTML, "482913")
	assert.Contains(t, msgs[0].HTML, "5 minutes")
}

func TestMailer_TransportFailureIsReturned(t *testing.T) {
	sender := NewMemorySender()
	sender.Err = errors.New("535 authentication failed")
	reg := prometheus.NewRegistry()
	m := New(sender, "Crypt Note", metrics.NewCollector(reg))

	err := m.SendSignupOTP(context.Background(), "b@x.com", "111111", 5*time.Minute)

	require.Error(t, err)
	assert.ErrorIs(t, err, sender.Err)
	assert.Empty(t, sender.Messages())
}

func TestCompose_ProducesParsableMIME(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	raw, err := Compose(&mail.Address{Name: "Crypt Note", Address: "noreply@x.com"}, Message{
		To:      "a@x.com",
		Subject: "Reset Your Crypt Note Password",
		HTML:    "<p>hello</p>",
	}, now)
	require.NoError(t, err)

	mr, err := mail.CreateReader(bytes.NewReader(raw))
	require.NoError(t, err)

	subject, err := mr.Header.Subject()
	require.NoError(t, err)
	assert.Equal(t, "Reset Your Crypt Note Password", subject)

	to, err := mr.Header.AddressList("To")
	require.NoError(t, err)
	require.Len(t, to, 1)
	assert.Equal(t, "a@x.com", to[0].Address)

	part, err := mr.NextPart()
	require.NoError(t, err)
	body, err := io.ReadAll(part.Body)
	require.NoError(t, err)
	assert.Equal(t, "<p>hello</p>", string(body))
}

func TestSMTPSender_RelaysComposedMessage(t *testing.T) {
	s := NewSMTPSender(SMTPSettings{Host: "smtp.example.com", Port: 587, Username: "noreply@x.com", Password: "pw", FromName: "Crypt Note"})

	var gotAddr, gotFrom string
	var gotTo []string
	s.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo = addr, from, to
		return nil
	}

	err := s.Send(context.Background(), Message{To: "a@x.com", Subject: "s", HTML: "b"})
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "noreply@x.com", gotFrom)
	assert.Equal(t, []string{"a@x.com"}, gotTo)
}

func TestSMTPSender_ContextCancelled(t *testing.T) {
	s := NewSMTPSender(SMTPSettings{Host: "smtp.example.com", Port: 587})
	block := make(chan struct{})
	defer close(block)
	s.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		<-block
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := s.Send(ctx, Message{To: "a@x.com"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "15 minutes", humanize(15*time.Minute))
	assert.Equal(t, "1 minute", humanize(time.Minute))
	assert.Equal(t, "1 hour", humanize(time.Hour))
	assert.Equal(t, "2 hours", humanize(2*time.Hour))
}

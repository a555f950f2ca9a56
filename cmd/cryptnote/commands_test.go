package main

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	api "cryptnote-backend/cmd/api"
	authdomain "cryptnote-backend/internal/auth/domain"
	authRepo "cryptnote-backend/internal/auth/repository"
	authUsecase "cryptnote-backend/internal/auth/usecase"
	notedomain "cryptnote-backend/internal/note/domain"
	noteRepo "cryptnote-backend/internal/note/repository"
	noteUsecase "cryptnote-backend/internal/note/usecase"
	"cryptnote-backend/pkg/config"
	"cryptnote-backend/pkg/database/testdb"
	"cryptnote-backend/pkg/mailer"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	url       string
	tokenFile string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testdb.New(t, &authdomain.User{}, &authdomain.ResetToken{}, &authdomain.OtpToken{}, &notedomain.Note{})
	cfg := &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiry:     time.Hour,
		ResetTokenTTL: 15 * time.Minute,
		OtpTTL:        5 * time.Minute,
		BcryptCost:    4,
		LiveURL:       "http://localhost:3000",
	}
	authUc := authUsecase.NewAuthUsecase(
		authRepo.NewUserRepository(db),
		authRepo.NewResetTokenRepository(db),
		authRepo.NewOtpTokenRepository(db),
		mailer.New(mailer.NewMemorySender(), "Crypt Note", nil),
		cfg,
	)
	noteUc := noteUsecase.NewNoteUsecase(noteRepo.NewGormNoteRepository(db))

	srv := httptest.NewServer(api.NewHandler(authUc, noteUc, cfg, nil, nil).Engine())
	t.Cleanup(srv.Close)

	return &harness{url: srv.URL, tokenFile: filepath.Join(t.TempDir(), "token")}
}

// run executes one CLI invocation with stdin and a fixed password.
func (h *harness) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := &app{
		in:  strings.NewReader(stdin),
		out: &out,
		readPassword: func(io.Writer, string) (string, error) {
			return "pass1", nil
		},
	}
	full := append([]string{"-api", h.url, "-token-file", h.tokenFile}, args...)
	err := a.run(context.Background(), full)
	if a.session != nil {
		a.session.Idle.Stop()
	}
	return out.String(), err
}

func TestCLI_SignupAddListLogout(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "Alice\na@x.com\n", "signup")
	require.NoError(t, err)
	assert.Contains(t, out, "Account created")

	out, err = h.run(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice <a@x.com>")

	out, err = h.run(t, "Hi!!\nhello world\n\n", "add")
	require.NoError(t, err)
	assert.Contains(t, out, "Note added:")

	out, err = h.run(t, "", "notes")
	require.NoError(t, err)
	assert.Contains(t, out, "Hi!!")
	assert.Contains(t, out, "General")

	out, err = h.run(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	_, err = h.run(t, "", "notes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "please log in first")

	out, err = h.run(t, "a@x.com\n", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in")
}

func TestCLI_SignupRejectsExistingEmail(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "Alice\na@x.com\n", "signup")
	require.NoError(t, err)
	_, err = h.run(t, "Alice\na@x.com\n", "signup")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCLI_ValidationMessage(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "Alice\na@x.com\n", "signup")
	require.NoError(t, err)

	_, err = h.run(t, "Hi\nhello world\n\n", "add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Enter Valid Title")
}

func TestCLI_UsageAndUnknown(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "")
	require.NoError(t, err)
	assert.Contains(t, out, "usage: cryptnote")

	_, err = h.run(t, "", "frobnicate")
	assert.Error(t, err)

	_, err = h.run(t, "", "edit")
	assert.Error(t, err)
}

func TestCLI_OtpFlow(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "new@x.com\n", "sendotp")
	require.NoError(t, err)
	assert.Contains(t, out, "OTP sent successfully")

	_, err = h.run(t, "new@x.com\n000000\n", "verifyotp")
	assert.Error(t, err)
}

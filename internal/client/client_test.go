package client

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
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

func newServer(t *testing.T) *httptest.Server {
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
	authUc.SetUserDeletedCallback(noteUc.DeleteAllForUser)

	srv := httptest.NewServer(api.NewHandler(authUc, noteUc, cfg, nil, nil).Engine())
	t.Cleanup(srv.Close)
	return srv
}

func TestSession_NotesRoundTrip(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	tokens, err := NewTokenStore("")
	require.NoError(t, err)
	s := NewSession(srv.URL, tokens, time.Minute)
	t.Cleanup(s.Idle.Stop)

	err = s.Notes.Refresh(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	require.NoError(t, s.API.Signup(ctx, "Alice", "a@x.com", "pass1"))
	assert.True(t, tokens.LoggedIn())

	user, err := s.API.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	first, err := s.Notes.Add(ctx, "Hi!!", "hello world", "")
	require.NoError(t, err)
	assert.Equal(t, "General", first.Tag)
	time.Sleep(5 * time.Millisecond)
	second, err := s.Notes.Add(ctx, "Later", "a newer note", "work")
	require.NoError(t, err)

	sorted := s.Notes.Sorted()
	require.Len(t, sorted, 2)
	assert.Equal(t, second.ID, sorted[0].ID)

	edited, err := s.Notes.Edit(ctx, first.ID, NoteChanges{Title: "Hello!"})
	require.NoError(t, err)
	assert.Equal(t, "Hello!", edited.Title)

	require.NoError(t, s.Notes.Delete(ctx, second.ID))
	assert.Equal(t, 1, s.Notes.Len())

	s.Notes.Clear()
	require.NoError(t, s.Notes.Refresh(ctx))
	notes := s.Notes.Sorted()
	require.Len(t, notes, 1)
	assert.Equal(t, "Hello!", notes[0].Title)

	require.NoError(t, s.Logout())
	assert.False(t, tokens.LoggedIn())
	assert.Zero(t, s.Notes.Len())
}

func TestAPIClient_Errors(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	tokens, _ := NewTokenStore("")
	c := NewAPIClient(srv.URL, tokens)

	err := c.Login(ctx, "a@x.com", "pass1")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, "Please try to login with correct credentials", apiErr.Error())

	err = c.Signup(ctx, "Al", "a@x.com", "pass1")
	require.ErrorAs(t, err, &apiErr)
	require.Len(t, apiErr.Fields, 1)
	assert.Equal(t, "Enter Valid Name", apiErr.Error())

	require.NoError(t, tokens.Set("forged"))
	_, err = c.FetchNotes(ctx)
	assert.True(t, IsUnauthorized(err))
}

func TestAPIClient_AccountFlows(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()
	tokens, _ := NewTokenStore("")
	c := NewAPIClient(srv.URL, tokens)

	msg, err := c.SendOtp(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "OTP sent successfully", msg)

	exists, err := c.CheckEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, c.Signup(ctx, "Alice", "a@x.com", "pass1"))
	exists, err = c.CheckEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	updated, err := c.UpdateUser(ctx, "Alice C", "")
	require.NoError(t, err)
	assert.Equal(t, "Alice C", updated.Name)

	msg, err = c.ForgotPassword(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Reset password link sent to your email.", msg)

	_, err = c.ResetPassword(ctx, "deadbeef", "pass2")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid or expired token", apiErr.Message)

	msg, err = c.DeleteUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "User account deleted successfully", msg)
	assert.False(t, tokens.LoggedIn())
}

func TestTokenStore_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	s, err := NewTokenStore(path)
	require.NoError(t, err)
	assert.False(t, s.LoggedIn())
	require.NoError(t, s.Set("abc"))

	reloaded, err := NewTokenStore(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", reloaded.Get())

	require.NoError(t, reloaded.Clear())
	again, err := NewTokenStore(path)
	require.NoError(t, err)
	assert.False(t, again.LoggedIn())
}

func TestInactivityTimer(t *testing.T) {
	var fired atomic.Int32
	timer := NewInactivityTimer(80*time.Millisecond, func() { fired.Add(1) })

	timer.Touch()
	time.Sleep(40 * time.Millisecond)
	timer.Touch()
	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, fired.Load())

	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 5*time.Millisecond)

	timer.Touch()
	timer.Stop()
	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestSession_IdleLogout(t *testing.T) {
	tokens, _ := NewTokenStore("")
	require.NoError(t, tokens.Set("token"))
	s := NewSession("http://127.0.0.1:0", tokens, 20*time.Millisecond)

	s.Idle.Touch()
	require.Eventually(t, func() bool {
		alert, ok := s.Alerts.Current()
		return ok && alert.Type == AlertWarning
	}, time.Second, 5*time.Millisecond)
	assert.False(t, tokens.LoggedIn())
}

func TestAlertBanner(t *testing.T) {
	b := NewAlertBanner()
	b.duration = 20 * time.Millisecond

	_, ok := b.Current()
	assert.False(t, ok)

	b.Show("Note added", AlertSuccess)
	alert, ok := b.Current()
	require.True(t, ok)
	assert.Equal(t, "Note added", alert.Msg)

	require.Eventually(t, func() bool {
		_, ok := b.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestDarkMode(t *testing.T) {
	tokens, _ := NewTokenStore("")
	s := NewSession("http://localhost", tokens, time.Minute)

	assert.False(t, s.DarkMode())
	assert.True(t, s.ToggleDarkMode())
	assert.True(t, s.DarkMode())
	assert.False(t, s.ToggleDarkMode())
}

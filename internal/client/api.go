// Package client talks to the CryptNote HTTP API and holds the client-side
// session: the token, the loaded notes and the inactivity timer.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	authdomain "cryptnote-backend/internal/auth/domain"
	notedomain "cryptnote-backend/internal/note/domain"
	"cryptnote-backend/pkg/apperror"
)

// ErrNotLoggedIn is returned by authenticated calls when no token is held.
// Callers treat it as a redirect to the login screen.
var ErrNotLoggedIn = errors.New("not logged in")

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	Fields  []apperror.FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		msgs := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			msgs = append(msgs, f.Msg)
		}
		return strings.Join(msgs, "; ")
	}
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// APIClient issues typed requests against the REST API.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     *TokenStore
}

func NewAPIClient(baseURL string, tokens *TokenStore) *APIClient {
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		tokens:     tokens,
	}
}

type authTokenBody struct {
	Success   bool   `json:"success"`
	AuthToken string `json:"authToken"`
}

type messageBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Signup creates an account and stores the returned session token.
func (c *APIClient) Signup(ctx context.Context, name, email, password string) error {
	var out authTokenBody
	if err := c.do(ctx, http.MethodPost, "/api/auth/createuser", false, map[string]string{
		"name": name, "email": email, "password": password,
	}, &out); err != nil {
		return err
	}
	return c.tokens.Set(out.AuthToken)
}

// Login stores the session token on success.
func (c *APIClient) Login(ctx context.Context, email, password string) error {
	var out authTokenBody
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", false, map[string]string{
		"email": email, "password": password,
	}, &out); err != nil {
		return err
	}
	return c.tokens.Set(out.AuthToken)
}

func (c *APIClient) GetUser(ctx context.Context) (*authdomain.User, error) {
	var user authdomain.User
	if err := c.do(ctx, http.MethodPost, "/api/auth/getuser", true, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser sends only the non-empty fields.
func (c *APIClient) UpdateUser(ctx context.Context, name, password string) (*authdomain.User, error) {
	body := map[string]string{}
	if name != "" {
		body["name"] = name
	}
	if password != "" {
		body["password"] = password
	}

	var out struct {
		Success     bool             `json:"success"`
		UpdatedUser *authdomain.User `json:"updatedUser"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/auth/updateuser", true, body, &out); err != nil {
		return nil, err
	}
	return out.UpdatedUser, nil
}

// DeleteUser removes the account and forgets the token.
func (c *APIClient) DeleteUser(ctx context.Context) (string, error) {
	var out messageBody
	if err := c.do(ctx, http.MethodDelete, "/api/auth/deleteuser", true, nil, &out); err != nil {
		return "", err
	}
	return out.Message, c.tokens.Clear()
}

func (c *APIClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	var out messageBody
	err := c.do(ctx, http.MethodPost, "/api/auth/forgotpassword", false, map[string]string{"email": email}, &out)
	return out.Message, err
}

func (c *APIClient) ResetPassword(ctx context.Context, token, password string) (string, error) {
	var out messageBody
	err := c.do(ctx, http.MethodPost, "/api/auth/resetpassword/"+url.PathEscape(token), false, map[string]string{"password": password}, &out)
	return out.Message, err
}

func (c *APIClient) SendOtp(ctx context.Context, email string) (string, error) {
	var out messageBody
	err := c.do(ctx, http.MethodPost, "/api/auth/sendotp", false, map[string]string{"email": email}, &out)
	return out.Message, err
}

func (c *APIClient) VerifyOtp(ctx context.Context, email, otp string) (string, error) {
	var out messageBody
	err := c.do(ctx, http.MethodPost, "/api/auth/verifyotp", false, map[string]string{"email": email, "otp": otp}, &out)
	return out.Message, err
}

func (c *APIClient) CheckEmail(ctx context.Context, email string) (bool, error) {
	var out struct {
		Exists bool `json:"exists"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/checkemail", false, map[string]string{"email": email}, &out)
	return out.Exists, err
}

func (c *APIClient) FetchNotes(ctx context.Context) ([]*notedomain.Note, error) {
	notes := make([]*notedomain.Note, 0)
	if err := c.do(ctx, http.MethodGet, "/api/notes/fetchallnotes", true, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *APIClient) AddNote(ctx context.Context, title, description, tag string) (*notedomain.Note, error) {
	body := map[string]string{"title": title, "description": description}
	if tag != "" {
		body["tag"] = tag
	}
	var note notedomain.Note
	if err := c.do(ctx, http.MethodPost, "/api/notes/addnote", true, body, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// NoteChanges lists the fields to update; empty fields are left unchanged.
type NoteChanges struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Tag         string `json:"tag,omitempty"`
}

func (c *APIClient) UpdateNote(ctx context.Context, id string, changes NoteChanges) (*notedomain.Note, error) {
	var out struct {
		Note *notedomain.Note `json:"note"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/notes/updatenote/"+url.PathEscape(id), true, changes, &out); err != nil {
		return nil, err
	}
	return out.Note, nil
}

func (c *APIClient) DeleteNote(ctx context.Context, id string) (*notedomain.Note, error) {
	var out struct {
		Success string           `json:"Success"`
		Note    *notedomain.Note `json:"note"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/notes/deletenote/"+url.PathEscape(id), true, nil, &out); err != nil {
		return nil, err
	}
	return out.Note, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, authenticated bool, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		token := c.tokens.Get()
		if token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set("auth-token", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, raw []byte) error {
	apiErr := &APIError{Status: status}
	var body struct {
		Error  string                `json:"error"`
		Errors []apperror.FieldError `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Message = body.Error
		apiErr.Fields = body.Errors
	}
	return apiErr
}

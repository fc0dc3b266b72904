// Package api is the authenticated persistence client: a thin wrapper around
// the six remote operations (register, login, list, create, update, delete)
// that the rest of the client core calls. It owns the wire representation and
// the translation of HTTP failures into the conditions callers branch on.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"notekeep/internal/client/notes"
	"notekeep/internal/client/session"
)

// ErrNotFound is returned when the server reports the addressed note as
// missing or not owned; the two cases are indistinguishable by design.
var ErrNotFound = errors.New("note not found")

// AuthError carries the server's message for a rejected register or login.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// APIError is any other non-success response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// Client talks to one notekeep server. Timeouts and cancellation come from
// the caller's context; the client itself never retries.
type Client struct {
	base string
	http *http.Client
}

// New creates a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{},
	}
}

type credentialsRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  session.UserSummary `json:"user"`
	Token string              `json:"token"`
}

// wireNote is the server's JSON shape for a note. The single client-side
// category travels as a one-element tags list.
type wireNote struct {
	ID                 string     `json:"id,omitempty"`
	Title              string     `json:"title"`
	Content            string     `json:"content"`
	Tags               []string   `json:"tags"`
	Style              *wireStyle `json:"style,omitempty"`
	CreatedDisplayDate string     `json:"created_display_date,omitempty"`
	Favorite           bool       `json:"favorite"`
}

type wireStyle struct {
	FontFamily         string   `json:"font_family,omitempty"`
	BackgroundColor    string   `json:"background_color,omitempty"`
	BackgroundImageRef string   `json:"background_image_ref,omitempty"`
	AttachedImageRefs  []string `json:"attached_image_refs,omitempty"`
}

func encodeNote(n notes.Note) wireNote {
	w := wireNote{
		ID:                 n.ID,
		Title:              n.Title,
		Content:            n.Content,
		Tags:               []string{},
		CreatedDisplayDate: n.CreatedDisplayDate,
		Favorite:           n.Favorite,
	}
	if n.Category != "" {
		w.Tags = []string{n.Category}
	}
	if !n.Style.IsZero() {
		w.Style = &wireStyle{
			FontFamily:         n.Style.FontFamily,
			BackgroundColor:    n.Style.BackgroundColor,
			BackgroundImageRef: n.Style.BackgroundImageRef,
			AttachedImageRefs:  n.Style.AttachedImageRefs,
		}
	}
	return w
}

func decodeNote(w wireNote) notes.Note {
	n := notes.Note{
		ID:                 w.ID,
		Title:              w.Title,
		Content:            w.Content,
		CreatedDisplayDate: w.CreatedDisplayDate,
		Favorite:           w.Favorite,
	}
	// Reads tolerate multi-element tag lists; the first tag wins.
	if len(w.Tags) > 0 {
		n.Category = w.Tags[0]
	}
	if w.Style != nil {
		n.Style = notes.Style{
			FontFamily:         w.Style.FontFamily,
			BackgroundColor:    w.Style.BackgroundColor,
			BackgroundImageRef: w.Style.BackgroundImageRef,
			AttachedImageRefs:  w.Style.AttachedImageRefs,
		}
	}
	return n
}

// Register creates an account and returns a ready session.
func (c *Client) Register(ctx context.Context, username, email, password string) (session.Session, error) {
	return c.authenticate(ctx, "/api/auth/register", credentialsRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
}

// Login authenticates an existing account and returns a ready session.
func (c *Client) Login(ctx context.Context, email, password string) (session.Session, error) {
	return c.authenticate(ctx, "/api/auth/login", credentialsRequest{
		Email:    email,
		Password: password,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, req credentialsRequest) (session.Session, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, path, nil, req, &resp); err != nil {
		return session.Session{}, err
	}
	return session.Session{User: resp.User, Token: resp.Token}, nil
}

// ListNotes fetches the caller's whole collection.
func (c *Client) ListNotes(ctx context.Context, s *session.Session) ([]notes.Note, error) {
	var wires []wireNote
	if err := c.do(ctx, http.MethodGet, "/api/notes", s, nil, &wires); err != nil {
		return nil, err
	}
	out := make([]notes.Note, 0, len(wires))
	for _, w := range wires {
		out = append(out, decodeNote(w))
	}
	return out, nil
}

// CreateNote persists a new note and returns it with its server identifier.
func (c *Client) CreateNote(ctx context.Context, s *session.Session, n notes.Note) (notes.Note, error) {
	var w wireNote
	if err := c.do(ctx, http.MethodPost, "/api/notes", s, encodeNote(n), &w); err != nil {
		return notes.Note{}, err
	}
	return decodeNote(w), nil
}

// UpdateNote replaces the fields of an existing note, addressed by id.
func (c *Client) UpdateNote(ctx context.Context, s *session.Session, n notes.Note) (notes.Note, error) {
	if n.ID == "" {
		return notes.Note{}, ErrNotFound
	}
	var w wireNote
	if err := c.do(ctx, http.MethodPut, "/api/notes/"+n.ID, s, encodeNote(n), &w); err != nil {
		return notes.Note{}, err
	}
	return decodeNote(w), nil
}

// DeleteNote removes a note by id.
func (c *Client) DeleteNote(ctx context.Context, s *session.Session, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/notes/"+id, s, nil, nil)
}

// do runs one request/response cycle. A non-nil sess attaches the bearer
// token; out, when non-nil, receives the decoded success body.
func (c *Client) do(ctx context.Context, method, path string, sess *session.Session, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess != nil {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	return c.failure(path, resp)
}

func (c *Client) failure(path string, resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(raw, &payload)
	if payload.Message == "" {
		payload.Message = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return session.ErrExpired
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusBadRequest && strings.HasPrefix(path, "/api/auth/"):
		return &AuthError{Message: payload.Message}
	default:
		return &APIError{Status: resp.StatusCode, Message: payload.Message}
	}
}

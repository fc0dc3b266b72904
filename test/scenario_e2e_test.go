//go:build e2e

package test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFirstSessionE2E walks the canonical first-use flow at the wire level:
// register, log in, create one note, see it in the list, delete it, see an
// empty list.
func TestFirstSessionE2E(t *testing.T) {
	env := SetupTestEnvironment(t)

	const (
		email    = "a@x.com"
		password = "pw123456"
	)

	var userID string
	t.Run("register", func(t *testing.T) {
		body := register(t, env.BaseURL, "alice", email, password)

		user, ok := body["user"].(map[string]any)
		require.True(t, ok, "user should be an object")
		assert.Equal(t, email, user["email"])
		assert.Equal(t, "alice", user["username"])
		require.NotEmpty(t, user["id"])
		userID = user["id"].(string)

		assert.NotEmpty(t, body["token"])
		assert.NotContains(t, user, "password_hash")
	})

	var token string
	t.Run("login_token_encodes_user", func(t *testing.T) {
		body := loginExpect(t, env.BaseURL, email, password, http.StatusOK)
		token = GetTokenFromResponse(t, body, "token")

		// The bearer token must identify the same account the register
		// call created.
		parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
		require.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, userID, claims["user_id"])
		assert.Equal(t, email, claims["email"])
	})

	headers := func() map[string]string {
		return map[string]string{"Authorization": "Bearer " + token}
	}

	var noteID string
	t.Run("create_note", func(t *testing.T) {
		resp, err := httpJSON(http.MethodPost, env.BaseURL+notesEndpoint, map[string]any{
			"title":   "T",
			"content": "C",
			"tags":    []string{"Work"},
		}, headers())
		require.NoError(t, err)
		defer func() {
			if err := resp.Body.Close(); err != nil {
				t.Errorf(msgFailedToCloseResponseBody, err)
			}
		}()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var note map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&note))
		assert.Equal(t, "T", note["title"])
		assert.Equal(t, "C", note["content"])
		assert.Equal(t, []any{"Work"}, note["tags"])
		require.NotEmpty(t, note["id"])
		noteID = note["id"].(string)
	})

	t.Run("list_contains_note", func(t *testing.T) {
		notes := listNotes(t, env.BaseURL, headers())
		require.Len(t, notes, 1)

		note := notes[0].(map[string]any)
		assert.Equal(t, noteID, note["id"])
		assert.Equal(t, "T", note["title"])
	})

	t.Run("delete_note", func(t *testing.T) {
		ExecuteHTTPJSONStep(t, HTTPJSONStep{
			Name:           "delete created note",
			Method:         http.MethodDelete,
			URL:            notesEndpoint + "/" + noteID,
			Headers:        headers(),
			ExpectedStatus: http.StatusOK,
			Validator:      MessageValidator("Note deleted successfully"),
		}, env.BaseURL)
	})

	t.Run("list_empty_after_delete", func(t *testing.T) {
		notes := listNotes(t, env.BaseURL, headers())
		assert.Empty(t, notes)
	})
}

// listNotes fetches the caller's collection as a raw JSON array.
func listNotes(t *testing.T, baseURL string, headers map[string]string) []any {
	t.Helper()
	resp, err := httpJSON(http.MethodGet, baseURL+notesEndpoint, nil, headers)
	require.NoError(t, err)
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Errorf(msgFailedToCloseResponseBody, err)
		}
	}()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var notes []any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&notes))
	return notes
}

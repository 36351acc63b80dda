package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIdentity answers the handful of identity endpoints the client
// uses, recording the last request for assertions.
type fakeIdentity struct {
	mu        sync.Mutex
	lastPath  string
	lastGrant string
	lastAuth  string
	lastBody  map[string]string
}

func (f *fakeIdentity) handler() http.Handler {
	session := map[string]any{
		"access_token":  "access-abc",
		"token_type":    "bearer",
		"expires_in":    3600,
		"refresh_token": "refresh-xyz",
		"user": map[string]any{
			"id":    "user-1",
			"email": "reader@example.com",
		},
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.lastPath = r.URL.Path
		f.lastGrant = r.URL.Query().Get("grant_type")
		f.lastAuth = r.Header.Get("Authorization")
		f.lastBody = map[string]string{}
		json.NewDecoder(r.Body).Decode(&f.lastBody)
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/v1/token":
			if f.lastBody["password"] == "wrong" {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, `{"error_code":"invalid_credentials","msg":"Invalid login credentials"}`)
				return
			}
			json.NewEncoder(w).Encode(session)
		case "/auth/v1/signup":
			// Confirmation pending: a bare user object, no tokens.
			json.NewEncoder(w).Encode(map[string]any{
				"id":    "user-2",
				"email": f.lastBody["email"],
			})
		case "/auth/v1/logout":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	})
}

func newAuthClient(t *testing.T) (*Auth, *fakeIdentity) {
	t.Helper()
	id := &fakeIdentity{}
	srv := httptest.NewServer(id.handler())
	t.Cleanup(srv.Close)
	return New(srv.URL, "anon-key").Auth(), id
}

func TestSignInParsesSession(t *testing.T) {
	auth, id := newAuthClient(t)

	s, err := auth.SignIn(context.Background(), "reader@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "access-abc", s.AccessToken)
	assert.Equal(t, "refresh-xyz", s.RefreshToken)
	assert.Equal(t, "user-1", s.User.ID)
	assert.Equal(t, "reader@example.com", s.User.Email)

	assert.Equal(t, "password", id.lastGrant)
	assert.Equal(t, "reader@example.com", id.lastBody["email"])
}

func TestSignInRejectedCredentials(t *testing.T) {
	auth, _ := newAuthClient(t)

	_, err := auth.SignIn(context.Background(), "reader@example.com", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "invalid_credentials", apiErr.Code)
	assert.Equal(t, "Invalid login credentials", apiErr.Message)
}

func TestRefreshUsesRefreshGrant(t *testing.T) {
	auth, id := newAuthClient(t)

	s, err := auth.Refresh(context.Background(), "refresh-xyz")
	require.NoError(t, err)
	assert.Equal(t, "access-abc", s.AccessToken)
	assert.Equal(t, "refresh_token", id.lastGrant)
	assert.Equal(t, "refresh-xyz", id.lastBody["refresh_token"])
}

func TestSignUpWithoutConfirmationHasNoToken(t *testing.T) {
	auth, id := newAuthClient(t)

	s, err := auth.SignUp(context.Background(), "new@example.com", "secret", "https://app.example.com/welcome")
	require.NoError(t, err)
	assert.Empty(t, s.AccessToken, "unconfirmed sign-up should not issue tokens")

	assert.Equal(t, "/auth/v1/signup", id.lastPath)
	assert.Equal(t, "new@example.com", id.lastBody["email"])
}

func TestSignOutSendsUserToken(t *testing.T) {
	auth, id := newAuthClient(t)

	require.NoError(t, auth.SignOut(context.Background(), "access-abc"))
	assert.Equal(t, "/auth/v1/logout", id.lastPath)
	assert.Equal(t, "Bearer access-abc", id.lastAuth)
}

package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pulsefit/core/internal/apierr"
	"github.com/pulsefit/core/internal/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthServer struct {
	userID       uuid.UUID
	signInCalls  atomic.Int32
	refreshCalls atomic.Int32
}

func (s *fakeAuthServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		grantType := r.URL.Query().Get("grant_type")
		switch grantType {
		case "password":
			s.signInCalls.Add(1)
			var creds struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			_ = json.NewDecoder(r.Body).Decode(&creds)
			if creds.Password != "correct-horse" {
				http.Error(w, `{"error":"invalid credentials"}`, http.StatusUnauthorized)
				return
			}
			s.writeToken(w, "access-1", creds.Email)
		case "refresh_token":
			s.refreshCalls.Add(1)
			s.writeToken(w, "access-2", "athlete@example.com")
		default:
			http.Error(w, "bad grant", http.StatusBadRequest)
		}
	})
	mux.HandleFunc("/auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var creds struct {
			Email string `json:"email"`
		}
		_ = json.NewDecoder(r.Body).Decode(&creds)
		s.writeToken(w, "access-new", creds.Email)
	})
	mux.HandleFunc("/auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func (s *fakeAuthServer) writeToken(w http.ResponseWriter, accessToken, email string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"access_token":  accessToken,
		"token_type":    "bearer",
		"expires_in":    3600,
		"refresh_token": "refresh-1",
		"user": map[string]any{
			"id":    s.userID.String(),
			"email": email,
		},
	})
}

func TestHttpApi_SignIn(t *testing.T) {
	fake := &fakeAuthServer{userID: uuid.New()}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	api := auth.NewHttpApi(server.URL, "anon-key", server.Client())

	session, err := api.SignIn(context.Background(), "athlete@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, fake.userID, session.UserID)
	assert.Equal(t, "access-1", session.AccessToken)
	assert.Equal(t, "refresh-1", session.RefreshToken)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	current, err := api.CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session.AccessToken, current.AccessToken)

	token, err := api.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-1", token)
}

func TestHttpApi_SignIn_BadCredentials(t *testing.T) {
	fake := &fakeAuthServer{userID: uuid.New()}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	api := auth.NewHttpApi(server.URL, "anon-key", server.Client())

	_, err := api.SignIn(context.Background(), "athlete@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, apierr.KindAuth, apierr.KindOf(err))

	_, err = api.CurrentSession(context.Background())
	assert.ErrorIs(t, err, auth.ErrNoSession)
}

func TestHttpApi_SignIn_EmptyInput(t *testing.T) {
	fake := &fakeAuthServer{userID: uuid.New()}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	api := auth.NewHttpApi(server.URL, "anon-key", server.Client())

	_, err := api.SignIn(context.Background(), "   ", "pass")
	assert.Equal(t, apierr.KindValidation, apierr.KindOf(err))
	assert.Zero(t, fake.signInCalls.Load(), "validation failures must not hit the network")
}

func TestHttpApi_Refresh(t *testing.T) {
	fake := &fakeAuthServer{userID: uuid.New()}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	api := auth.NewHttpApi(server.URL, "anon-key", server.Client())

	_, err := api.SignIn(context.Background(), "athlete@example.com", "correct-horse")
	require.NoError(t, err)

	newToken, err := api.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-2", newToken)
	assert.Equal(t, int32(1), fake.refreshCalls.Load())

	session, err := api.CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-2", session.AccessToken)
}

func TestHttpApi_SignUpAndSignOut(t *testing.T) {
	fake := &fakeAuthServer{userID: uuid.New()}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	api := auth.NewHttpApi(server.URL, "anon-key", server.Client())

	session, err := api.SignUp(context.Background(), "new@example.com", "pass123")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", session.Email)

	require.NoError(t, api.SignOut(context.Background()))
	_, err = api.CurrentSession(context.Background())
	assert.ErrorIs(t, err, auth.ErrNoSession)

	// signing out with no session is a no-op
	require.NoError(t, api.SignOut(context.Background()))
}

func TestTestApi_RoundTrip(t *testing.T) {
	api := auth.NewTestApi()
	ctx := context.Background()

	session, err := api.SignUp(ctx, "athlete@example.com", "pass123")
	require.NoError(t, err)
	require.NotNil(t, session)

	_, err = api.SignUp(ctx, "athlete@example.com", "pass123")
	assert.Equal(t, apierr.KindValidation, apierr.KindOf(err))

	require.NoError(t, api.SignOut(ctx))

	_, err = api.SignIn(ctx, "athlete@example.com", "wrong")
	assert.Equal(t, apierr.KindAuth, apierr.KindOf(err))

	signedIn, err := api.SignIn(ctx, "athlete@example.com", "pass123")
	require.NoError(t, err)
	assert.Equal(t, session.UserID, signedIn.UserID)

	token, err := api.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, signedIn.AccessToken, token)

	refreshed, err := api.Refresh(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, token, refreshed)
}

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pulsefit/core/internal/apierr"
	"github.com/pulsefit/core/internal/backend"
	"github.com/pulsefit/core/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var _ backend.SessionProvider = (*HttpApi)(nil)

// HttpApi talks to the hosted auth service (GoTrue-style endpoints) and
// holds the process-wide session. Repositories never read the session
// directly; they get tokens through the backend.SessionProvider interface.
type HttpApi struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	mu      sync.Mutex
	session *Session

	// injectable for tests
	nowFunc func() time.Time
}

func NewHttpApi(baseURL, apiKey string, httpClient *http.Client) *HttpApi {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &HttpApi{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		nowFunc:    time.Now,
	}
}

type credentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshPayload struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (api *HttpApi) SignIn(ctx context.Context, email, password string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.signIn")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apierr.Validation("email or password empty")
	}

	session, err := api.requestToken(ctx, "/auth/v1/token?grant_type=password", credentialsPayload{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	api.setSession(session)
	log.Debugf("auth: signed in user %s", session.UserID)
	return session, nil
}

func (api *HttpApi) SignUp(ctx context.Context, email, password string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.signUp")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apierr.Validation("email or password empty")
	}

	session, err := api.requestToken(ctx, "/auth/v1/signup", credentialsPayload{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	api.setSession(session)
	log.Debugf("auth: signed up user %s", session.UserID)
	return session, nil
}

func (api *HttpApi) SignOut(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.signOut")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	api.mu.Lock()
	session := api.session
	api.session = nil
	api.mu.Unlock()

	if session == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, api.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return fmt.Errorf("sign out: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	req.Header.Set("apikey", api.apiKey)

	resp, err := api.httpClient.Do(req)
	if err != nil {
		return apierr.Wrap(apierr.KindTransient, "sign out", err)
	}
	defer resp.Body.Close()

	// local session is gone regardless; a failed remote logout only means
	// the token lives until its TTL
	if resp.StatusCode >= 300 {
		log.Warnf("auth: remote sign out returned %d", resp.StatusCode)
	}
	return nil
}

func (api *HttpApi) CurrentSession(ctx context.Context) (*Session, error) {
	api.mu.Lock()
	session := api.session
	api.mu.Unlock()

	if session == nil {
		return nil, ErrNoSession
	}
	if session.Expired(api.nowFunc()) {
		if _, err := api.Refresh(ctx); err != nil {
			return nil, err
		}
		api.mu.Lock()
		session = api.session
		api.mu.Unlock()
	}
	return session, nil
}

// AccessToken implements backend.SessionProvider.
func (api *HttpApi) AccessToken(ctx context.Context) (string, error) {
	session, err := api.CurrentSession(ctx)
	if err != nil {
		return "", apierr.Wrap(apierr.KindAuth, "no access token", err)
	}
	return session.AccessToken, nil
}

// Refresh implements backend.SessionProvider. It exchanges the refresh
// token for a new session and returns the new access token.
func (api *HttpApi) Refresh(ctx context.Context) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.refresh")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	api.mu.Lock()
	session := api.session
	api.mu.Unlock()

	if session == nil || session.RefreshToken == "" {
		return "", apierr.Wrap(apierr.KindAuth, "refresh", ErrNoSession)
	}

	refreshed, err := api.requestToken(ctx, "/auth/v1/token?grant_type=refresh_token", refreshPayload{
		RefreshToken: session.RefreshToken,
	})
	if err != nil {
		return "", fmt.Errorf("refresh session: %w", err)
	}

	api.setSession(refreshed)
	log.Debugf("auth: session refreshed for user %s", refreshed.UserID)
	return refreshed.AccessToken, nil
}

func (api *HttpApi) setSession(session *Session) {
	api.mu.Lock()
	api.session = session
	api.mu.Unlock()
}

func (api *HttpApi) requestToken(ctx context.Context, path string, payload any) (*Session, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, api.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", api.apiKey)

	resp, err := api.httpClient.Do(req)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindTransient, "auth request", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindTransient, "read auth response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apierr.FromStatus(resp.StatusCode, fmt.Sprintf("auth request failed: %s", respBytes))
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(respBytes, &tokenResp); err != nil {
		return nil, apierr.Wrap(apierr.KindDecode, "decode auth response", err)
	}

	userID, err := uuid.Parse(tokenResp.User.ID)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindDecode, "decode auth user id", err)
	}

	return &Session{
		UserID:       userID,
		Email:        tokenResp.User.Email,
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
		ExpiresAt:    api.nowFunc().Add(time.Duration(tokenResp.ExpiresIn) * time.Second),
	}, nil
}

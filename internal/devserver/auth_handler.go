package devserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pulsefit/core/internal/auth"
	"github.com/pulsefit/core/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	accessTokenLength  = 35
	refreshTokenLength = 35
)

type account struct {
	userID       uuid.UUID
	email        string
	passwordHash string
}

// authHandler issues bearer tokens the way the hosted auth service does,
// against locally registered accounts.
type authHandler struct {
	mutex         sync.Mutex
	accounts      map[string]account
	refreshTokens map[string]account

	tokenStore auth.TokenStore
	tokenTTL   time.Duration
}

func newAuthHandler(tokenStore auth.TokenStore, tokenTTL time.Duration) *authHandler {
	return &authHandler{
		accounts:      map[string]account{},
		refreshTokens: map[string]account{},
		tokenStore:    tokenStore,
		tokenTTL:      tokenTTL,
	}
}

type credentialsRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string            `json:"access_token"`
	TokenType    string            `json:"token_type"`
	ExpiresIn    int               `json:"expires_in"`
	RefreshToken string            `json:"refresh_token"`
	User         tokenResponseUser `json:"user"`
}

type tokenResponseUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (h *authHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		http.Error(w, "email and password required", http.StatusUnprocessableEntity)
		return
	}

	passwordHash, err := pkg.HashPassword(req.Password)
	if err != nil {
		log.Errorf("devserver: hash password: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.mutex.Lock()
	if _, exists := h.accounts[email]; exists {
		h.mutex.Unlock()
		http.Error(w, "user already registered", http.StatusUnprocessableEntity)
		return
	}
	acc := account{
		userID:       uuid.New(),
		email:        email,
		passwordHash: passwordHash,
	}
	h.accounts[email] = acc
	h.mutex.Unlock()

	log.Debugf("devserver: registered account %s", email)
	h.issueSession(w, r, acc)
}

func (h *authHandler) handleToken(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	switch r.URL.Query().Get("grant_type") {
	case "password":
		email := strings.ToLower(strings.TrimSpace(req.Email))
		h.mutex.Lock()
		acc, exists := h.accounts[email]
		h.mutex.Unlock()

		if !exists || !pkg.CheckPasswordHash(req.Password, acc.passwordHash) {
			http.Error(w, "invalid login credentials", http.StatusUnauthorized)
			return
		}
		h.issueSession(w, r, acc)

	case "refresh_token":
		h.mutex.Lock()
		acc, exists := h.refreshTokens[req.RefreshToken]
		if exists {
			// refresh tokens are single use
			delete(h.refreshTokens, req.RefreshToken)
		}
		h.mutex.Unlock()

		if !exists {
			http.Error(w, "invalid refresh token", http.StatusUnauthorized)
			return
		}
		h.issueSession(w, r, acc)

	default:
		http.Error(w, "unsupported grant type", http.StatusBadRequest)
	}
}

func (h *authHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token != "" {
		if err := h.tokenStore.Drop(r.Context(), token); err != nil {
			log.Errorf("devserver: drop token: %s", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *authHandler) issueSession(w http.ResponseWriter, r *http.Request, acc account) {
	accessToken, err := pkg.GenerateRandomString(accessTokenLength)
	if err != nil {
		log.Errorf("devserver: generate access token: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	refreshToken, err := pkg.GenerateRandomString(refreshTokenLength)
	if err != nil {
		log.Errorf("devserver: generate refresh token: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := h.tokenStore.Save(r.Context(), accessToken, acc.userID); err != nil {
		log.Errorf("devserver: save token: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.mutex.Lock()
	h.refreshTokens[refreshToken] = acc
	h.mutex.Unlock()

	respBytes, err := json.Marshal(tokenResponse{
		AccessToken:  accessToken,
		TokenType:    "bearer",
		ExpiresIn:    int(h.tokenTTL.Seconds()),
		RefreshToken: refreshToken,
		User: tokenResponseUser{
			ID:    acc.userID.String(),
			Email: acc.email,
		},
	})
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respBytes, http.StatusOK)
}

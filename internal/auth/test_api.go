package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pulsefit/core/internal/apierr"
	"github.com/pulsefit/core/internal/backend"
	"github.com/pulsefit/core/pkg"

	"github.com/google/uuid"
)

var _ backend.SessionProvider = (*TestApi)(nil)

type testAccount struct {
	userID       uuid.UUID
	passwordHash string
}

// TestApi is the in-memory auth variant, used for tests and offline mode.
type TestApi struct {
	mu       sync.Mutex
	accounts map[string]testAccount
	session  *Session

	NowFunc func() time.Time
}

func NewTestApi() *TestApi {
	return &TestApi{
		accounts: make(map[string]testAccount),
		NowFunc:  time.Now,
	}
}

func (api *TestApi) SignIn(_ context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apierr.Validation("email or password empty")
	}

	api.mu.Lock()
	defer api.mu.Unlock()

	account, ok := api.accounts[email]
	if !ok || !pkg.CheckPasswordHash(password, account.passwordHash) {
		return nil, apierr.New(apierr.KindAuth, "invalid credentials")
	}

	session, err := api.newSession(account.userID, email)
	if err != nil {
		return nil, err
	}
	api.session = session
	return session, nil
}

func (api *TestApi) SignUp(_ context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apierr.Validation("email or password empty")
	}

	api.mu.Lock()
	defer api.mu.Unlock()

	if _, exists := api.accounts[email]; exists {
		return nil, apierr.Validation("account already exists")
	}

	passwordHash, err := pkg.HashPassword(password)
	if err != nil {
		return nil, err
	}

	account := testAccount{
		userID:       uuid.New(),
		passwordHash: passwordHash,
	}
	api.accounts[email] = account

	session, err := api.newSession(account.userID, email)
	if err != nil {
		return nil, err
	}
	api.session = session
	return session, nil
}

func (api *TestApi) SignOut(context.Context) error {
	api.mu.Lock()
	defer api.mu.Unlock()
	api.session = nil
	return nil
}

func (api *TestApi) CurrentSession(context.Context) (*Session, error) {
	api.mu.Lock()
	defer api.mu.Unlock()
	if api.session == nil {
		return nil, ErrNoSession
	}
	return api.session, nil
}

func (api *TestApi) AccessToken(ctx context.Context) (string, error) {
	session, err := api.CurrentSession(ctx)
	if err != nil {
		return "", apierr.Wrap(apierr.KindAuth, "no access token", err)
	}
	return session.AccessToken, nil
}

func (api *TestApi) Refresh(context.Context) (string, error) {
	api.mu.Lock()
	defer api.mu.Unlock()
	if api.session == nil {
		return "", apierr.Wrap(apierr.KindAuth, "refresh", ErrNoSession)
	}

	token, err := pkg.GenerateRandomString(35)
	if err != nil {
		return "", err
	}
	api.session.AccessToken = token
	api.session.ExpiresAt = api.NowFunc().Add(time.Hour)
	return token, nil
}

func (api *TestApi) newSession(userID uuid.UUID, email string) (*Session, error) {
	accessToken, err := pkg.GenerateRandomString(35)
	if err != nil {
		return nil, err
	}
	refreshToken, err := pkg.GenerateRandomString(35)
	if err != nil {
		return nil, err
	}
	return &Session{
		UserID:       userID,
		Email:        email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    api.NowFunc().Add(time.Hour),
	}, nil
}

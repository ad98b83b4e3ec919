package auth

import (
	"context"
	"errors"
)

var _ Api = (*HttpApi)(nil)
var _ Api = (*TestApi)(nil)

var ErrNoSession = errors.New("no active session")

type Api interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	CurrentSession(ctx context.Context) (*Session, error)
}

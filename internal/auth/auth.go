// Package auth abstracts the identity provider. The core consumes sessions
// and a change stream; it never sees credentials beyond the sign-in call.
package auth

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrWeakPassword       = errors.New("auth: password too short")
)

// Session identifies a signed-in user.
type Session struct {
	UserID string
	Email  string
	Name   string
}

// Change signals a session transition. An empty UserID means signed out.
type Change struct {
	UserID string
}

// Provider is the identity provider boundary. Error messages propagate
// verbatim to the caller as displayable text.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignUp(ctx context.Context, name, email, password string) (Session, error)
	SignOut()
	// CurrentUserID returns the signed-in user id, empty when signed out.
	CurrentUserID() string
	// Changes delivers session transitions, latest-wins for slow consumers.
	Changes() <-chan Change
}

package client

import (
	"context"
	"errors"
	"fmt"
	authDto "gooman/internal/domains/auth/model/dto"
	"gooman/shared/constant"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const alreadyRegistered = "already registered"

// MessageAccountExists replaces the backend text when sign-up hits an existing email.
const MessageAccountExists = "This email is already registered. Please sign in."

type AuthErrorKind int

const (
	AuthErrFailed AuthErrorKind = iota
	AuthErrInvalidCredentials
	AuthErrAccountExists
)

// AuthError is a categorized sign-in or sign-up failure. Message is shown to the user as is.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

var errFullNameRequired = errors.New("full name is required")

// Backend is the part of API the auth surface depends on.
type Backend interface {
	Register(ctx context.Context, req authDto.RegisterRequest) (authDto.SessionResponse, error)
	Login(ctx context.Context, req authDto.LoginRequest) (authDto.SessionResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (authDto.SessionResponse, error)
	Logout(ctx context.Context, accessToken string) error
}

type Auth struct {
	backend Backend
	session *Session
}

func NewAuth(backend Backend, session *Session) *Auth {
	return &Auth{
		backend: backend,
		session: session,
	}
}

func (a *Auth) SignIn(ctx context.Context, email, password string) (Identity, error) {
	res, err := a.backend.Login(ctx, authDto.LoginRequest{Email: email, Password: password})
	if err != nil {
		return Identity{}, categorize(err)
	}

	return a.signedIn(EventSignedIn, res), nil
}

// SignUp registers and signs in. An empty full name is rejected without a request.
func (a *Auth) SignUp(ctx context.Context, email, password, fullName string) (Identity, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == constant.Empty {
		return Identity{}, &AuthError{Kind: AuthErrFailed, Message: errFullNameRequired.Error(), Err: errFullNameRequired}
	}

	res, err := a.backend.Register(ctx, authDto.RegisterRequest{
		Email:    email,
		Password: password,
		FullName: fullName,
	})
	if err != nil {
		return Identity{}, categorize(err)
	}

	return a.signedIn(EventSignedIn, res), nil
}

// SignOut revokes the access token when one is held and always forgets the session.
func (a *Auth) SignOut(ctx context.Context) error {
	token := a.session.accessToken()
	a.session.Forget()

	if token == constant.Empty {
		return nil
	}

	if err := a.backend.Logout(ctx, token); err != nil {
		log.Warn().Err(err).Msg("failed to revoke access token")

		return fmt.Errorf("revoking session: %w", err)
	}

	return nil
}

// Refresh rotates the token pair. A rejected refresh expires the session.
func (a *Auth) Refresh(ctx context.Context) error {
	refreshToken := a.session.refreshToken()
	if refreshToken == constant.Empty {
		return ErrUnauthorized
	}

	res, err := a.backend.RefreshToken(ctx, refreshToken)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			a.session.apply(EventExpired, nil, tokens{})
		}

		return fmt.Errorf("refreshing session: %w", err)
	}

	a.signedIn(EventTokenRefreshed, res)

	return nil
}

func (a *Auth) signedIn(kind EventKind, res authDto.SessionResponse) Identity {
	identity := Identity{
		ID:       res.User.ID,
		Email:    res.User.Email,
		FullName: res.User.FullName,
	}

	a.session.apply(kind, &identity, tokens{
		access:    res.AccessToken,
		refresh:   res.RefreshToken,
		expiresAt: time.Unix(res.ExpiresAt, 0),
	})

	return identity
}

func categorize(err error) *AuthError {
	authErr := &AuthError{Kind: AuthErrFailed, Message: err.Error(), Err: err}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return authErr
	}

	switch {
	case strings.Contains(strings.ToLower(apiErr.Message), alreadyRegistered):
		authErr.Kind = AuthErrAccountExists
		authErr.Message = MessageAccountExists
	case apiErr.Message == authDto.MessageInvalidCredentials:
		authErr.Kind = AuthErrInvalidCredentials
	}

	return authErr
}

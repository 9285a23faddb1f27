// internal/application/usecase/auth_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	sessiondom "luxe/internal/domain/session"
)

var (
	ErrAuthInvalidArgument = errors.New("auth_usecase: invalid argument")
	ErrAuthNotConfigured   = errors.New("auth_usecase: signer is not configured")
)

// PasswordSigner is the outbound port to the auth provider's email/password
// sign-in endpoint. It returns the established identity plus the provider's
// ID token for subsequent request authentication.
type PasswordSigner interface {
	SignInWithPassword(ctx context.Context, email, password string) (sessiondom.Identity, string, error)
}

// TokenRevoker invalidates the provider session on logout (best-effort).
type TokenRevoker interface {
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// AuthUsecase wraps the remote auth provider and keeps the process-wide
// session container in sync. The container's subscribers receive every
// state change for the lifetime of the process.
type AuthUsecase struct {
	signer    PasswordSigner
	revoker   TokenRevoker
	container *sessiondom.Container
}

func NewAuthUsecase(signer PasswordSigner, revoker TokenRevoker, container *sessiondom.Container) *AuthUsecase {
	return &AuthUsecase{
		signer:    signer,
		revoker:   revoker,
		container: container,
	}
}

// LoginResult reports the established identity and the derived admin flag.
type LoginResult struct {
	Identity sessiondom.Identity
	IDToken  string
	IsAdmin  bool
}

// Login delegates to the auth provider. On success the container is updated;
// on failure the error propagates to the caller (the handler surfaces it as
// a user-visible notification).
func (uc *AuthUsecase) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if uc == nil || uc.signer == nil {
		return LoginResult{}, ErrAuthNotConfigured
	}

	e := strings.TrimSpace(email)
	if e == "" || password == "" {
		return LoginResult{}, ErrAuthInvalidArgument
	}

	id, token, err := uc.signer.SignInWithPassword(ctx, e, password)
	if err != nil {
		log.Printf("[auth_usecase] login failed email=%q err=%v", e, err)
		return LoginResult{}, err
	}

	uc.container.Set(id)

	return LoginResult{
		Identity: id,
		IDToken:  token,
		IsAdmin:  uc.container.IsAdmin(),
	}, nil
}

// Logout clears the current identity. Refresh-token revocation is
// best-effort; a provider failure still signs the session out locally.
func (uc *AuthUsecase) Logout(ctx context.Context) error {
	if uc == nil || uc.container == nil {
		return ErrAuthNotConfigured
	}

	if cur := uc.container.Current(); cur != nil && uc.revoker != nil {
		if err := uc.revoker.RevokeRefreshTokens(ctx, cur.UID); err != nil {
			log.Printf("[auth_usecase] revoke refresh tokens failed uid=%q err=%v", cur.UID, err)
		}
	}

	uc.container.Clear()
	return nil
}

// Container exposes the session container for read-side wiring (middleware,
// handlers deriving isAdmin).
func (uc *AuthUsecase) Container() *sessiondom.Container {
	return uc.container
}

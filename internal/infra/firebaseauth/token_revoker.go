// internal/infra/firebaseauth/token_revoker.go
package firebaseauth

import (
	"context"
	"errors"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// TokenRevoker revokes refresh tokens through the Admin SDK so a
// logged-out session cannot mint new ID tokens. Satisfies
// usecase.TokenRevoker.
type TokenRevoker struct {
	Client *fbauth.Client
}

func NewTokenRevoker(client *fbauth.Client) *TokenRevoker {
	return &TokenRevoker{Client: client}
}

func (r *TokenRevoker) RevokeRefreshTokens(ctx context.Context, uid string) error {
	if r == nil || r.Client == nil {
		return errors.New("firebase auth client is nil")
	}
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return errors.New("uid is empty")
	}
	return r.Client.RevokeRefreshTokens(ctx, uid)
}

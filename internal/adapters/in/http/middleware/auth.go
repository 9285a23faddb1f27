// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	sessiondom "luxe/internal/domain/session"
)

// FirebaseAuthClient は firebase auth クライアントのエイリアス。
// RouterDeps などからは *middleware.FirebaseAuthClient 型で受けられます。
type FirebaseAuthClient = fbauth.Client

// context key は string を使わず、衝突回避のため独自型を使用（SA1029 対策）
type ctxKey struct{ name string }

var ctxKeyIdentity = ctxKey{name: "identity"}

// AuthMiddleware は
//
//   - Authorization: Bearer <ID_TOKEN>
//
// を検証し、Identity を context に詰めて次のハンドラへ渡す。
type AuthMiddleware struct {
	FirebaseAuth *FirebaseAuthClient
	AdminEmails  []string
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.FirebaseAuth == nil {
			http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		email := ""
		if raw, ok := token.Claims["email"]; ok {
			if e, ok2 := raw.(string); ok2 {
				email = strings.TrimSpace(e)
			}
		}

		identity, err := sessiondom.New(uid, email)
		if err != nil {
			http.Error(w, "invalid identity in token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyIdentity, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects requests whose verified identity is not on the
// administrator allow-list. Must be mounted inside AuthMiddleware.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFrom(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if sessiondom.ResolveRole(identity.Email, m.AdminEmails) != sessiondom.RoleAdmin {
			http.Error(w, "forbidden: admin only", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFrom returns the verified identity stored by AuthMiddleware.
func IdentityFrom(ctx context.Context) (sessiondom.Identity, bool) {
	identity, ok := ctx.Value(ctxKeyIdentity).(sessiondom.Identity)
	return identity, ok
}

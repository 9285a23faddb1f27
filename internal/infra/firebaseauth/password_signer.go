// internal/infra/firebaseauth/password_signer.go
package firebaseauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	sessiondom "luxe/internal/domain/session"
)

const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// PasswordSigner exchanges email/password for a Firebase ID token via the
// Identity Toolkit REST API. The Admin SDK has no password sign-in, so the
// web API key flow is used here. Satisfies usecase.PasswordSigner.
type PasswordSigner struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

func NewPasswordSigner(apiKey string) *PasswordSigner {
	return &PasswordSigner{
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		endpoint: signInEndpoint,
		apiKey:   strings.TrimSpace(apiKey),
	}
}

func (s *PasswordSigner) SignInWithPassword(ctx context.Context, email, password string) (sessiondom.Identity, string, error) {
	if s.apiKey == "" {
		return sessiondom.Identity{}, "", fmt.Errorf("firebase web api key not configured")
	}

	payload, err := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return sessiondom.Identity{}, "", fmt.Errorf("encode sign-in payload: %w", err)
	}

	url := s.endpoint + "?key=" + s.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return sessiondom.Identity{}, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[firebaseauth] sign-in request FAILED err=%v", err)
		return sessiondom.Identity{}, "", fmt.Errorf("sign in: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// エラー本文はパスワード等を含まないが、ログには status のみ残す
		log.Printf("[firebaseauth] sign-in rejected status=%d", resp.StatusCode)
		return sessiondom.Identity{}, "", fmt.Errorf("sign in failed: %s", signInErrorCode(bodyBytes))
	}

	var res struct {
		LocalID string `json:"localId"`
		Email   string `json:"email"`
		IDToken string `json:"idToken"`
	}
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		return sessiondom.Identity{}, "", fmt.Errorf("decode sign-in response: %w", err)
	}
	if res.LocalID == "" || res.IDToken == "" {
		return sessiondom.Identity{}, "", fmt.Errorf("sign-in response missing localId or idToken")
	}

	id, err := sessiondom.New(res.LocalID, res.Email)
	if err != nil {
		return sessiondom.Identity{}, "", err
	}
	return id, res.IDToken, nil
}

// signInErrorCode extracts the Identity Toolkit error code
// (e.g. "INVALID_PASSWORD", "EMAIL_NOT_FOUND") from an error body.
func signInErrorCode(body []byte) string {
	var res struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &res); err != nil || res.Error.Message == "" {
		return "UNKNOWN"
	}
	return res.Error.Message
}

// internal/adapters/in/http/handlers/auth_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	usecase "luxe/internal/application/usecase"
)

// AuthHandler は /auth 関連のエンドポイントを担当します。
type AuthHandler struct {
	uc *usecase.AuthUsecase
}

func NewAuthHandler(uc *usecase.AuthUsecase) http.Handler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {

	// ------------------------------------------------------------
	// POST /auth/login
	//   body: { "email": "...", "password": "..." }
	// ------------------------------------------------------------
	case r.Method == http.MethodPost && r.URL.Path == "/auth/login":
		h.login(w, r)

	// ------------------------------------------------------------
	// POST /auth/logout
	// ------------------------------------------------------------
	case r.Method == http.MethodPost && r.URL.Path == "/auth/logout":
		h.logout(w, r)

	default:
		notFound(w)
	}
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	res, err := h.uc.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrAuthInvalidArgument) {
			writeErr(w, http.StatusBadRequest, "email and password are required")
			return
		}
		// 失敗理由（EMAIL_NOT_FOUND / INVALID_PASSWORD 等）は伏せて 401 で揃える
		log.Printf("[AuthHandler] login rejected: %v", err)
		writeErr(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"uid":     res.Identity.UID,
		"email":   res.Identity.Email,
		"idToken": res.IDToken,
		"isAdmin": res.IsAdmin,
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.Logout(r.Context()); err != nil {
		log.Printf("[AuthHandler] logout failed: %v", err)
		writeErr(w, http.StatusInternalServerError, "logout failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

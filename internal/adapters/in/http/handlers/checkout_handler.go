// internal/adapters/in/http/handlers/checkout_handler.go
package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	usecase "luxe/internal/application/usecase"
	checkoutdom "luxe/internal/domain/checkout"
)

// CheckoutHandler は POST /checkout を担当します。
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) http.Handler {
	return &CheckoutHandler{uc: uc}
}

func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	cartID := cartIDFrom(r)
	if cartID == "" {
		writeErr(w, http.StatusBadRequest, "missing cart id (X-Cart-Id header or cartId query)")
		return
	}

	var body struct {
		Shipping checkoutdom.ShippingInfo `json:"shipping"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	res, err := h.uc.PlaceOrder(r.Context(), cartID, body.Shipping)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCheckoutEmptyCart),
			errors.Is(err, checkoutdom.ErrEmptyCart):
			writeErr(w, http.StatusConflict, "cart is empty")
		case errors.Is(err, checkoutdom.ErrMissingShipping):
			writeErr(w, http.StatusBadRequest, "shipping info is incomplete")
		default:
			log.Printf("[CheckoutHandler] placeOrder failed: %v", err)
			writeErr(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	out := map[string]any{
		"summary":     res.Summary,
		"whatsappUrl": res.DeepLink,
		"emailed":     res.Emailed,
	}
	if len(res.SnapshotPNG) > 0 {
		out["snapshotPng"] = base64.StdEncoding.EncodeToString(res.SnapshotPNG)
	}

	writeJSON(w, http.StatusOK, out)
}

// internal/adapters/in/http/handlers/cart_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	usecase "luxe/internal/application/usecase"
	cartdom "luxe/internal/domain/cart"
)

// CartHandler は /cart 関連のエンドポイントを担当します。
// カートIDは X-Cart-Id ヘッダ（または cartId クエリ）で受け取る。
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) http.Handler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	cartID := cartIDFrom(r)
	if cartID == "" {
		writeErr(w, http.StatusBadRequest, "missing cart id (X-Cart-Id header or cartId query)")
		return
	}

	switch {

	// ------------------------------------------------------------
	// GET /cart
	// ------------------------------------------------------------
	case r.Method == http.MethodGet && isCartRoot(r.URL.Path):
		h.get(w, r, cartID)

	// ------------------------------------------------------------
	// DELETE /cart
	// ------------------------------------------------------------
	case r.Method == http.MethodDelete && isCartRoot(r.URL.Path):
		h.clear(w, r, cartID)

	// ------------------------------------------------------------
	// POST /cart/items
	//   body: { productId, name, price, image, selectedSize, quantity }
	// ------------------------------------------------------------
	case r.Method == http.MethodPost && r.URL.Path == "/cart/items":
		h.addItem(w, r, cartID)

	// ------------------------------------------------------------
	// PUT /cart/items
	//   body: { productId, selectedSize, quantity }
	// ------------------------------------------------------------
	case r.Method == http.MethodPut && r.URL.Path == "/cart/items":
		h.setQuantity(w, r, cartID)

	// ------------------------------------------------------------
	// DELETE /cart/items
	//   body: { productId, selectedSize }
	// ------------------------------------------------------------
	case r.Method == http.MethodDelete && r.URL.Path == "/cart/items":
		h.removeItem(w, r, cartID)

	default:
		notFound(w)
	}
}

func isCartRoot(path string) bool {
	return path == "/cart" || path == "/cart/"
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request, cartID string) {
	c, err := h.uc.GetOrCreate(r.Context(), cartID)
	if err != nil {
		h.fail(w, "get", err)
		return
	}
	h.respond(w, c)
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request, cartID string) {
	c, err := h.uc.Clear(r.Context(), cartID)
	if err != nil {
		h.fail(w, "clear", err)
		return
	}
	h.respond(w, c)
}

func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request, cartID string) {
	var body struct {
		cartdom.LineItem
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	qty := body.Quantity
	if qty == 0 {
		qty = 1
	}

	c, err := h.uc.AddItem(r.Context(), cartID, body.LineItem, qty)
	if err != nil {
		h.fail(w, "addItem", err)
		return
	}
	h.respond(w, c)
}

func (h *CartHandler) setQuantity(w http.ResponseWriter, r *http.Request, cartID string) {
	var body struct {
		ProductID    string `json:"productId"`
		SelectedSize string `json:"selectedSize"`
		Quantity     int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	c, err := h.uc.SetQuantity(r.Context(), cartID, body.ProductID, body.SelectedSize, body.Quantity)
	if err != nil {
		h.fail(w, "setQuantity", err)
		return
	}
	h.respond(w, c)
}

func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request, cartID string) {
	var body struct {
		ProductID    string `json:"productId"`
		SelectedSize string `json:"selectedSize"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		// DELETE without a body falls back to query parameters.
		q := r.URL.Query()
		body.ProductID = strings.TrimSpace(q.Get("productId"))
		body.SelectedSize = strings.TrimSpace(q.Get("selectedSize"))
	}
	if body.ProductID == "" {
		writeErr(w, http.StatusBadRequest, "productId is required")
		return
	}

	c, err := h.uc.RemoveItem(r.Context(), cartID, body.ProductID, body.SelectedSize)
	if err != nil {
		h.fail(w, "removeItem", err)
		return
	}
	h.respond(w, c)
}

func (h *CartHandler) respond(w http.ResponseWriter, c *cartdom.Cart) {
	writeJSON(w, http.StatusOK, map[string]any{
		"cart":      c,
		"itemCount": c.ItemCount(),
		"total":     c.Total(),
	})
}

func (h *CartHandler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, usecase.ErrCartInvalidArgument),
		errors.Is(err, cartdom.ErrInvalidItem),
		errors.Is(err, cartdom.ErrInvalidCart):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrCartNotFound):
		notFound(w)
	default:
		log.Printf("[CartHandler] %s failed: %v", op, err)
		writeErr(w, http.StatusInternalServerError, "cart operation failed")
	}
}

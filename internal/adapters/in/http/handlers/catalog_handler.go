// internal/adapters/in/http/handlers/catalog_handler.go
package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	catalogqry "luxe/internal/application/query/catalog"
	proddom "luxe/internal/domain/product"
)

// CatalogHandler は /catalog 関連のエンドポイントを担当します。
// 閲覧専用（認証不要）。
type CatalogHandler struct {
	query *catalogqry.Query
}

func NewCatalogHandler(query *catalogqry.Query) http.Handler {
	return &CatalogHandler{query: query}
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	switch {

	// ------------------------------------------------------------
	// GET /catalog?category=&search=&minPrice=&maxPrice=&size=
	// ------------------------------------------------------------
	case r.URL.Path == "/catalog" || r.URL.Path == "/catalog/":
		h.list(w, r)

	// ------------------------------------------------------------
	// GET /catalog/{id}
	// ------------------------------------------------------------
	case strings.HasPrefix(r.URL.Path, "/catalog/"):
		id := strings.TrimPrefix(r.URL.Path, "/catalog/")
		h.get(w, r, id)

	default:
		notFound(w)
	}
}

func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := catalogqry.Filter{
		Search:   strings.TrimSpace(q.Get("search")),
		MinPrice: parseFloatPtr(q.Get("minPrice")),
		MaxPrice: parseFloatPtr(q.Get("maxPrice")),
		Size:     strings.TrimSpace(q.Get("size")),
	}
	category := strings.TrimSpace(q.Get("category"))

	items, err := h.query.List(r.Context(), category, filter)
	if err != nil {
		log.Printf("[CatalogHandler] list failed: %v", err)
		writeErr(w, http.StatusInternalServerError, "failed to load catalog")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"products": items})
}

func (h *CatalogHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		writeErr(w, http.StatusBadRequest, "invalid id")
		return
	}

	p, err := h.query.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, proddom.ErrNotFound) {
			notFound(w)
			return
		}
		log.Printf("[CatalogHandler] get %s failed: %v", id, err)
		writeErr(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// internal/adapters/in/http/handlers/product_admin_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	usecase "luxe/internal/application/usecase"
	proddom "luxe/internal/domain/product"
)

// maxImageFormMemory bounds the in-memory part of multipart parsing.
const maxImageFormMemory = 32 << 20 // 32 MiB

// ProductAdminHandler は /admin/products と /admin/images を担当します。
// AuthMiddleware + RequireAdmin の内側にマウントされる前提。
type ProductAdminHandler struct {
	uc      *usecase.ProductUsecase
	imageUC *usecase.ImageUsecase
}

func NewProductAdminHandler(uc *usecase.ProductUsecase, imageUC *usecase.ImageUsecase) http.Handler {
	return &ProductAdminHandler{uc: uc, imageUC: imageUC}
}

func (h *ProductAdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	log.Printf("[ProductAdminHandler] method=%s path=%s", r.Method, r.URL.Path)

	switch {

	// ------------------------------------------------------------
	// POST /admin/images  (multipart: images[] + existing CSV)
	// ------------------------------------------------------------
	case r.Method == http.MethodPost && r.URL.Path == "/admin/images":
		h.uploadImages(w, r)

	// ------------------------------------------------------------
	// POST /admin/products
	// ------------------------------------------------------------
	case r.Method == http.MethodPost && isAdminProductsRoot(r.URL.Path):
		h.create(w, r)

	// ------------------------------------------------------------
	// POST /admin/products/{id}/sale
	// DELETE /admin/products/{id}/sale
	// ------------------------------------------------------------
	case strings.HasSuffix(r.URL.Path, "/sale") && strings.HasPrefix(r.URL.Path, "/admin/products/"):
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/admin/products/"), "/sale")
		id = strings.Trim(id, "/")
		switch r.Method {
		case http.MethodPost:
			h.markSale(w, r, id)
		case http.MethodDelete:
			h.removeSale(w, r, id)
		default:
			methodNotAllowed(w)
		}

	// ------------------------------------------------------------
	// PUT /admin/products/{id}
	// DELETE /admin/products/{id}
	// ------------------------------------------------------------
	case strings.HasPrefix(r.URL.Path, "/admin/products/"):
		id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/admin/products/"), "/")
		switch r.Method {
		case http.MethodPut:
			h.update(w, r, id)
		case http.MethodDelete:
			h.delete(w, r, id)
		default:
			methodNotAllowed(w)
		}

	default:
		notFound(w)
	}
}

func isAdminProductsRoot(path string) bool {
	return path == "/admin/products" || path == "/admin/products/"
}

func (h *ProductAdminHandler) create(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeSaveInput(w, r)
	if !ok {
		return
	}

	p, err := h.uc.Create(r.Context(), in)
	if err != nil {
		h.fail(w, "create", err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductAdminHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	in, ok := decodeSaveInput(w, r)
	if !ok {
		return
	}

	p, err := h.uc.Update(r.Context(), id, in)
	if err != nil {
		h.fail(w, "update", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductAdminHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.uc.Delete(r.Context(), id); err != nil {
		h.fail(w, "delete", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

func (h *ProductAdminHandler) markSale(w http.ResponseWriter, r *http.Request, id string) {
	var body struct {
		SalePrice float64 `json:"salePrice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	p, err := h.uc.MarkAsSale(r.Context(), id, body.SalePrice)
	if err != nil {
		h.fail(w, "markSale", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductAdminHandler) removeSale(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.uc.RemoveSale(r.Context(), id)
	if err != nil {
		h.fail(w, "removeSale", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ------------------------------------------------------------
// POST /admin/images
// ------------------------------------------------------------

func (h *ProductAdminHandler) uploadImages(w http.ResponseWriter, r *http.Request) {
	if h.imageUC == nil {
		writeErr(w, http.StatusServiceUnavailable, "image upload not configured")
		return
	}

	if err := r.ParseMultipartForm(maxImageFormMemory); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	existing := splitCSV(r.FormValue("existing"))

	fileHeaders := r.MultipartForm.File["images"]
	files := make([]usecase.ImageFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			writeErr(w, http.StatusBadRequest, "unreadable upload: "+fh.Filename)
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			writeErr(w, http.StatusBadRequest, "unreadable upload: "+fh.Filename)
			return
		}
		files = append(files, usecase.ImageFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	urls, err := h.imageUC.UploadBatch(r.Context(), existing, files)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrImageNoFiles),
			errors.Is(err, usecase.ErrImageTooMany):
			writeErr(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("[ProductAdminHandler] uploadImages failed: %v", err)
			writeErr(w, http.StatusBadGateway, "image upload failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"urls": urls})
}

// ------------------------------------------------------------
// helpers
// ------------------------------------------------------------

func decodeSaveInput(w http.ResponseWriter, r *http.Request) (usecase.SaveProductInput, bool) {
	var body struct {
		Name        string   `json:"name"`
		Price       string   `json:"price"`
		Description string   `json:"description"`
		Categories  []string `json:"categories"`
		Sizes       []string `json:"sizes"`
		Images      []string `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return usecase.SaveProductInput{}, false
	}
	return usecase.SaveProductInput{
		Name:        body.Name,
		PriceText:   body.Price,
		Description: body.Description,
		Categories:  body.Categories,
		Sizes:       body.Sizes,
		Images:      body.Images,
	}, true
}

func (h *ProductAdminHandler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, proddom.ErrNotFound):
		notFound(w)
	case errors.Is(err, usecase.ErrProductInvalidPrice),
		errors.Is(err, proddom.ErrInvalidName),
		errors.Is(err, proddom.ErrInvalidPrice),
		errors.Is(err, proddom.ErrInvalidSalePrice),
		errors.Is(err, proddom.ErrTooManyImages):
		writeErr(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[ProductAdminHandler] %s failed: %v", op, err)
		writeErr(w, http.StatusInternalServerError, "product operation failed")
	}
}

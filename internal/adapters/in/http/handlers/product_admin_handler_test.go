// internal/adapters/in/http/handlers/product_admin_handler_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usecase "luxe/internal/application/usecase"
	proddom "luxe/internal/domain/product"
)

type stubImageStore struct{}

func (stubImageStore) Upload(_ context.Context, filename, _ string, _ []byte) (string, error) {
	return "https://images.example.com/" + filename, nil
}

func newAdminServer(t *testing.T) (http.Handler, *fakeProductRepo) {
	t.Helper()
	repo := newFakeProductRepo()
	uc := usecase.NewProductUsecaseWithClock(repo, fixedClock{testNow})
	return NewProductAdminHandler(uc, usecase.NewImageUsecase(stubImageStore{})), repo
}

func doAdmin(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

const dressJSON = `{"name":"Silk Dress","price":"$129.99","description":"flowy",
	"categories":["women"],"sizes":["S","M"],"images":["https://img.example.com/1.jpg"]}`

func TestProductAdminCRUD(t *testing.T) {
	h, repo := newAdminServer(t)

	t.Run("create parses the price text", func(t *testing.T) {
		rec := doAdmin(t, h, http.MethodPost, "/admin/products", dressJSON)
		require.Equal(t, http.StatusCreated, rec.Code)

		var p proddom.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		assert.Equal(t, 129.99, p.Price)
		assert.Contains(t, repo.docs, p.ID)
	})

	t.Run("invalid price rejected", func(t *testing.T) {
		rec := doAdmin(t, h, http.MethodPost, "/admin/products", `{"name":"X","price":"free"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update rewrites fields", func(t *testing.T) {
		body := strings.Replace(dressJSON, "Silk Dress", "Silk Dress II", 1)
		rec := doAdmin(t, h, http.MethodPut, "/admin/products/gen-1", body)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Silk Dress II", repo.docs["gen-1"].Name)
	})

	t.Run("update of a missing product is 404", func(t *testing.T) {
		rec := doAdmin(t, h, http.MethodPut, "/admin/products/ghost", dressJSON)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("sale lifecycle", func(t *testing.T) {
		rec := doAdmin(t, h, http.MethodPost, "/admin/products/gen-1/sale", `{"salePrice":64.99}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var p proddom.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		require.NotNil(t, p.SalePercentage)
		assert.Equal(t, 50, *p.SalePercentage)
		assert.True(t, p.HasCategory(proddom.SaleCategory))

		rec = doAdmin(t, h, http.MethodPost, "/admin/products/gen-1/sale", `{"salePrice":200}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = doAdmin(t, h, http.MethodDelete, "/admin/products/gen-1/sale", "")
		require.Equal(t, http.StatusOK, rec.Code)
		p = proddom.Product{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		assert.Nil(t, p.SalePrice)
	})

	t.Run("delete", func(t *testing.T) {
		rec := doAdmin(t, h, http.MethodDelete, "/admin/products/gen-1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, repo.docs, "gen-1")
	})
}

func TestProductAdminImageUpload(t *testing.T) {
	h, _ := newAdminServer(t)

	buildForm := func(t *testing.T, existing string, names ...string) (*bytes.Buffer, string) {
		t.Helper()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		if existing != "" {
			require.NoError(t, mw.WriteField("existing", existing))
		}
		for _, n := range names {
			fw, err := mw.CreateFormFile("images", n)
			require.NoError(t, err)
			_, err = fw.Write([]byte{0xff, 0xd8})
			require.NoError(t, err)
		}
		require.NoError(t, mw.Close())
		return &buf, mw.FormDataContentType()
	}

	post := func(body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/admin/images", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("uploads and returns urls in order", func(t *testing.T) {
		body, ct := buildForm(t, "", "a.jpg", "b.jpg")
		rec := post(body, ct)
		require.Equal(t, http.StatusOK, rec.Code)

		var out struct {
			URLs []string `json:"urls"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, []string{
			"https://images.example.com/a.jpg",
			"https://images.example.com/b.jpg",
		}, out.URLs)
	})

	t.Run("ceiling counts existing urls", func(t *testing.T) {
		existing := make([]string, 0, proddom.MaxImages-1)
		for i := 0; i < proddom.MaxImages-1; i++ {
			existing = append(existing, fmt.Sprintf("u%d", i))
		}
		body, ct := buildForm(t, strings.Join(existing, ","), "a.jpg", "b.jpg")
		rec := post(body, ct)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty batch rejected", func(t *testing.T) {
		body, ct := buildForm(t, "")
		rec := post(body, ct)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

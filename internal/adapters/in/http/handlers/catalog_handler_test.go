// internal/adapters/in/http/handlers/catalog_handler_test.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogqry "luxe/internal/application/query/catalog"
	proddom "luxe/internal/domain/product"
)

func seedCatalog(t *testing.T) *fakeProductRepo {
	t.Helper()
	repo := newFakeProductRepo()

	dress, err := proddom.New("", "Silk Dress", 120, "", nil, []string{"S", "M"}, []string{"women"}, testNow)
	require.NoError(t, err)
	require.NoError(t, dress.MarkAsSale(60, testNow))
	tee, err := proddom.New("", "Linen Tee", 20, "", nil, []string{"M"}, []string{"women"}, testNow)
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), dress)
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), tee)
	require.NoError(t, err)
	return repo
}

func TestCatalogHandler(t *testing.T) {
	repo := seedCatalog(t)
	h := NewCatalogHandler(catalogqry.NewQuery(repo))

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	t.Run("list all", func(t *testing.T) {
		rec := get("/catalog")
		require.Equal(t, http.StatusOK, rec.Code)

		var out struct {
			Products []proddom.Product `json:"products"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Len(t, out.Products, 2)
	})

	t.Run("filters narrow the list", func(t *testing.T) {
		rec := get("/catalog?category=women&maxPrice=30")
		require.Equal(t, http.StatusOK, rec.Code)

		var out struct {
			Products []proddom.Product `json:"products"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		require.Len(t, out.Products, 1)
		assert.Equal(t, "Linen Tee", out.Products[0].Name)
	})

	t.Run("sale category uses the tag", func(t *testing.T) {
		rec := get("/catalog?category=sale")
		require.Equal(t, http.StatusOK, rec.Code)

		var out struct {
			Products []proddom.Product `json:"products"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		require.Len(t, out.Products, 1)
		assert.Equal(t, "Silk Dress", out.Products[0].Name)
	})

	t.Run("detail and missing id", func(t *testing.T) {
		rec := get("/catalog/gen-1")
		require.Equal(t, http.StatusOK, rec.Code)

		var p proddom.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		assert.Equal(t, "Silk Dress", p.Name)

		rec = get("/catalog/ghost")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("writes rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/catalog", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

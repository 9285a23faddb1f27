// internal/adapters/in/http/handlers/checkout_handler_test.go
package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usecase "luxe/internal/application/usecase"
	cartdom "luxe/internal/domain/cart"
)

type stubRenderer struct {
	png []byte
}

func (r *stubRenderer) RenderPNG(_ context.Context, _ string) ([]byte, error) {
	return r.png, nil
}

const shippingJSON = `{"shipping":{
	"name":"Jane Doe","email":"jane@example.com","phone":"+1 555 0101",
	"address":"1 Main St","city":"Beirut","state":"BA","zip":"1107"}}`

func TestCheckoutHandler(t *testing.T) {
	seed := func(t *testing.T) *fakeCartRepo {
		t.Helper()
		repo := newFakeCartRepo()
		cartUC := usecase.NewCartUsecaseWithClock(repo, fixedClock{testNow})
		_, err := cartUC.AddItem(context.Background(), "c1", cartdom.LineItem{
			ProductID:    "p1",
			Name:         "Linen Tee",
			Price:        20,
			SelectedSize: "M",
		}, 3)
		require.NoError(t, err)
		return repo
	}

	post := func(h http.Handler, cartID, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
		if cartID != "" {
			req.Header.Set("X-Cart-Id", cartID)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("happy path returns deep link and snapshot, empties cart", func(t *testing.T) {
		repo := seed(t)
		uc := usecase.NewCheckoutUsecaseWithClock(repo, &stubRenderer{png: []byte("png")}, nil, "96176565298", fixedClock{testNow})
		rec := post(NewCheckoutHandler(uc), "c1", shippingJSON)
		require.Equal(t, http.StatusOK, rec.Code)

		var out struct {
			WhatsappURL string `json:"whatsappUrl"`
			SnapshotPNG string `json:"snapshotPng"`
			Emailed     bool   `json:"emailed"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.True(t, strings.HasPrefix(out.WhatsappURL, "https://wa.me/96176565298?text="))
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("png")), out.SnapshotPNG)
		assert.False(t, out.Emailed)

		assert.Empty(t, repo.docs["c1"].Items)
	})

	t.Run("empty cart conflicts", func(t *testing.T) {
		uc := usecase.NewCheckoutUsecaseWithClock(newFakeCartRepo(), nil, nil, "96176565298", fixedClock{testNow})
		rec := post(NewCheckoutHandler(uc), "c1", shippingJSON)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("incomplete shipping rejected", func(t *testing.T) {
		repo := seed(t)
		uc := usecase.NewCheckoutUsecaseWithClock(repo, nil, nil, "96176565298", fixedClock{testNow})
		rec := post(NewCheckoutHandler(uc), "c1", `{"shipping":{"name":"Jane"}}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Len(t, repo.docs["c1"].Items, 1)
	})

	t.Run("missing cart id rejected", func(t *testing.T) {
		uc := usecase.NewCheckoutUsecaseWithClock(newFakeCartRepo(), nil, nil, "96176565298", fixedClock{testNow})
		rec := post(NewCheckoutHandler(uc), "", shippingJSON)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

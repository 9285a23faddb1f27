// internal/application/usecase/checkout_usecase_test.go
package usecase

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	checkoutdom "luxe/internal/domain/checkout"
)

type stubRenderer struct {
	png  []byte
	err  error
	html string
}

func (r *stubRenderer) RenderPNG(_ context.Context, html string) ([]byte, error) {
	r.html = html
	return r.png, r.err
}

type stubMailer struct {
	sent []string
	err  error
}

func (m *stubMailer) SendOrderMessage(_ context.Context, message string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, message)
	return nil
}

func testShipping() checkoutdom.ShippingInfo {
	return checkoutdom.ShippingInfo{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Phone:   "+1 555 0101",
		Address: "1 Main St",
		City:    "Beirut",
		State:   "BA",
		Zip:     "1107",
	}
}

func seedCheckoutCart(t *testing.T) *fakeCartRepo {
	t.Helper()
	ctx := context.Background()
	repo := newFakeCartRepo()
	cartUC := NewCartUsecaseWithClock(repo, fixedClock{testNow})
	_, err := cartUC.AddItem(ctx, "cart-1", lineTee("M"), 3)
	require.NoError(t, err)
	return repo
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path clears the cart and builds the handoff", func(t *testing.T) {
		repo := seedCheckoutCart(t)
		renderer := &stubRenderer{png: []byte("png-bytes")}
		mailer := &stubMailer{}
		uc := NewCheckoutUsecaseWithClock(repo, renderer, mailer, "96176565298", fixedClock{testNow})

		res, err := uc.PlaceOrder(ctx, "cart-1", testShipping())
		require.NoError(t, err)

		assert.Equal(t, 60.00, res.Summary.Total)
		assert.Contains(t, res.Message, "Customer: Jane Doe")
		assert.Contains(t, res.Message, "*Total: $60.00*")

		u, perr := url.Parse(res.DeepLink)
		require.NoError(t, perr)
		assert.Equal(t, "wa.me", u.Host)
		assert.Equal(t, "/96176565298", u.Path)
		assert.Equal(t, res.Message, u.Query().Get("text"))

		assert.Equal(t, []byte("png-bytes"), res.SnapshotPNG)
		assert.Contains(t, renderer.html, "Order Summary")
		assert.True(t, res.Emailed)
		require.Len(t, mailer.sent, 1)

		stored := repo.docs["cart-1"]
		assert.Empty(t, stored.Items)
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		repo := newFakeCartRepo()
		uc := NewCheckoutUsecaseWithClock(repo, nil, nil, "96176565298", fixedClock{testNow})

		_, err := uc.PlaceOrder(ctx, "cart-1", testShipping())
		assert.ErrorIs(t, err, ErrCheckoutEmptyCart)
	})

	t.Run("missing shipping field is rejected and cart survives", func(t *testing.T) {
		repo := seedCheckoutCart(t)
		uc := NewCheckoutUsecaseWithClock(repo, nil, nil, "96176565298", fixedClock{testNow})

		s := testShipping()
		s.Zip = ""
		_, err := uc.PlaceOrder(ctx, "cart-1", s)
		assert.ErrorIs(t, err, checkoutdom.ErrMissingShipping)

		stored := repo.docs["cart-1"]
		assert.Len(t, stored.Items, 1)
	})

	t.Run("snapshot failure is non-fatal", func(t *testing.T) {
		repo := seedCheckoutCart(t)
		renderer := &stubRenderer{err: errors.New("chrome went away")}
		uc := NewCheckoutUsecaseWithClock(repo, renderer, nil, "96176565298", fixedClock{testNow})

		res, err := uc.PlaceOrder(ctx, "cart-1", testShipping())
		require.NoError(t, err)
		assert.Nil(t, res.SnapshotPNG)
		assert.NotEmpty(t, res.DeepLink)
	})

	t.Run("mail failure is non-fatal", func(t *testing.T) {
		repo := seedCheckoutCart(t)
		mailer := &stubMailer{err: errors.New("sendgrid 500")}
		uc := NewCheckoutUsecaseWithClock(repo, nil, mailer, "96176565298", fixedClock{testNow})

		res, err := uc.PlaceOrder(ctx, "cart-1", testShipping())
		require.NoError(t, err)
		assert.False(t, res.Emailed)
	})

	t.Run("no mailer configured", func(t *testing.T) {
		repo := seedCheckoutCart(t)
		uc := NewCheckoutUsecaseWithClock(repo, nil, nil, "96176565298", fixedClock{testNow})

		res, err := uc.PlaceOrder(ctx, "cart-1", testShipping())
		require.NoError(t, err)
		assert.False(t, res.Emailed)
	})
}

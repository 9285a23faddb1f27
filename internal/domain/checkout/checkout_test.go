// internal/domain/checkout/checkout_test.go
package checkout

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "luxe/internal/domain/cart"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func shipping() ShippingInfo {
	return ShippingInfo{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Phone:   "+1 555 0101",
		Address: "1 Main St",
		City:    "Beirut",
		State:   "BA",
		Zip:     "1107",
	}
}

func filledCart(t *testing.T) *cartdom.Cart {
	t.Helper()
	c, err := cartdom.New("cart-1", nil, t0)
	require.NoError(t, err)
	require.NoError(t, c.AddItem(cartdom.LineItem{
		ProductID: "p1", Name: "Linen Tee", Price: 20, SelectedSize: "M",
	}, 3, t0))
	require.NoError(t, c.AddItem(cartdom.LineItem{
		ProductID: "p2", Name: "Silk Scarf", Price: 35.50,
	}, 1, t0))
	return c
}

func TestNewOrderSummary(t *testing.T) {
	t.Run("rejects empty cart", func(t *testing.T) {
		empty, err := cartdom.New("cart-1", nil, t0)
		require.NoError(t, err)

		_, err = NewOrderSummary(empty, shipping(), t0)
		assert.ErrorIs(t, err, ErrEmptyCart)

		_, err = NewOrderSummary(nil, shipping(), t0)
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("rejects missing shipping fields", func(t *testing.T) {
		s := shipping()
		s.City = "  "
		_, err := NewOrderSummary(filledCart(t), s, t0)
		assert.ErrorIs(t, err, ErrMissingShipping)
	})

	t.Run("snapshots items and total", func(t *testing.T) {
		o, err := NewOrderSummary(filledCart(t), shipping(), t0)
		require.NoError(t, err)

		assert.Len(t, o.Items, 2)
		assert.Equal(t, 95.50, o.Total)
		assert.Equal(t, t0, o.PlacedAt)
	})
}

func TestBuildMessage(t *testing.T) {
	o, err := NewOrderSummary(filledCart(t), shipping(), t0)
	require.NoError(t, err)

	msg := BuildMessage(o)

	assert.True(t, strings.HasPrefix(msg, "*New Order*"))
	assert.Contains(t, msg, "Customer: Jane Doe")
	assert.Contains(t, msg, "Address: 1 Main St, Beirut, BA 1107")
	assert.Contains(t, msg, "- Linen Tee (M) x3: $60.00")
	assert.Contains(t, msg, "- Silk Scarf x1: $35.50")
	assert.True(t, strings.HasSuffix(msg, "*Total: $95.50*"))
}

func TestDeepLink(t *testing.T) {
	link := DeepLink("+961 76-565-298", "*New Order*\ntotal")
	// number reduced to bare digits; message is URL-encoded
	assert.True(t, strings.HasPrefix(link, "https://wa.me/96176565298?text="))

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "*New Order*\ntotal", u.Query().Get("text"))
}

func TestSummaryHTML(t *testing.T) {
	o, err := NewOrderSummary(filledCart(t), shipping(), t0)
	require.NoError(t, err)

	doc := SummaryHTML(o)

	assert.Contains(t, doc, "<h1>Order Summary</h1>")
	assert.Contains(t, doc, "Linen Tee")
	assert.Contains(t, doc, "$95.50")
	assert.NotContains(t, doc, "<script")
}

func TestSummaryHTMLEscapes(t *testing.T) {
	c, err := cartdom.New("cart-1", nil, t0)
	require.NoError(t, err)
	require.NoError(t, c.AddItem(cartdom.LineItem{
		ProductID: "p1", Name: `<b>"Tee"</b>`, Price: 10,
	}, 1, t0))

	o, err := NewOrderSummary(c, shipping(), t0)
	require.NoError(t, err)

	doc := SummaryHTML(o)
	assert.NotContains(t, doc, "<b>")
	assert.Contains(t, doc, "&lt;b&gt;")
}

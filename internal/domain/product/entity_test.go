// internal/domain/product/entity_test.go
package product

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newProduct(t *testing.T, price float64) Product {
	t.Helper()
	p, err := New("p1", "Silk Dress", price, "desc",
		[]string{"https://img.example.com/1.jpg"},
		[]string{"S", "M", "L"},
		[]string{"women"},
		t0)
	require.NoError(t, err)
	return p
}

func TestNew(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p := newProduct(t, 100)
		assert.Equal(t, "Silk Dress", p.Name)
		assert.False(t, p.OnSale())
		assert.Equal(t, 100.0, p.EffectivePrice())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := New("p1", "  ", 10, "", nil, nil, nil, t0)
		assert.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		_, err := New("p1", "x", 0, "", nil, nil, nil, t0)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("rejects more than five images", func(t *testing.T) {
		imgs := []string{"a", "b", "c", "d", "e", "f"}
		_, err := New("p1", "x", 10, "", imgs, nil, nil, t0)
		assert.ErrorIs(t, err, ErrTooManyImages)
	})

	t.Run("normalizes lists", func(t *testing.T) {
		p, err := New("p1", "x", 10, "", []string{" a ", ""}, []string{""}, nil, t0)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, p.Images)
		assert.Nil(t, p.Sizes)
	})
}

func TestMarkAsSale(t *testing.T) {
	t.Run("rejects sale price at or above price", func(t *testing.T) {
		p := newProduct(t, 100)
		assert.ErrorIs(t, p.MarkAsSale(100, t0), ErrInvalidSalePrice)
		assert.ErrorIs(t, p.MarkAsSale(150, t0), ErrInvalidSalePrice)
		assert.ErrorIs(t, p.MarkAsSale(0, t0), ErrInvalidSalePrice)
		assert.ErrorIs(t, p.MarkAsSale(-5, t0), ErrInvalidSalePrice)
		assert.False(t, p.OnSale())
	})

	t.Run("computes rounded percentage and tags sale", func(t *testing.T) {
		cases := []struct {
			price, sale float64
			wantPct     int
		}{
			{100, 75, 25},
			{20, 14.99, 25},  // 25.05 → 25
			{30, 19.99, 33},  // 33.366… → 33
			{19.99, 9.99, 50}, // 50.025… → 50
		}
		for _, tc := range cases {
			p := newProduct(t, tc.price)
			require.NoError(t, p.MarkAsSale(tc.sale, t0))
			require.NotNil(t, p.SalePercentage)
			assert.Equal(t, tc.wantPct, *p.SalePercentage)
			assert.True(t, p.HasCategory(SaleCategory))
			assert.Equal(t, tc.sale, p.EffectivePrice())
		}
	})

	t.Run("does not duplicate the sale tag", func(t *testing.T) {
		p := newProduct(t, 100)
		require.NoError(t, p.MarkAsSale(80, t0))
		require.NoError(t, p.MarkAsSale(70, t0))

		n := 0
		for _, c := range p.Categories {
			if c == SaleCategory {
				n++
			}
		}
		assert.Equal(t, 1, n)
	})
}

func TestRemoveSale(t *testing.T) {
	p := newProduct(t, 100)
	require.NoError(t, p.MarkAsSale(60, t0))

	p.RemoveSale(t0.Add(time.Hour))

	assert.Nil(t, p.SalePrice)
	assert.Nil(t, p.SalePercentage)
	assert.False(t, p.HasCategory(SaleCategory))
	assert.Equal(t, []string{"women"}, p.Categories)
	assert.Equal(t, 100.0, p.EffectivePrice())
}

func TestHasSize(t *testing.T) {
	p := newProduct(t, 100)
	assert.True(t, p.HasSize("M"))
	assert.False(t, p.HasSize("XXL"))
	assert.False(t, p.HasSize("m")) // size tags are exact
}

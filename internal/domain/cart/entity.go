// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"math"
	"strings"
	"time"
)

var (
	ErrInvalidCart = errors.New("cart: invalid")
	ErrInvalidItem = errors.New("cart: invalid item")
)

// DefaultCartTTL is the inactivity window after which the cart becomes eligible for auto deletion
// (Firestore TTL should be configured on expiresAt).
const DefaultCartTTL = 30 * 24 * time.Hour

// LineItem represents "one line item" in a cart.
// Name / Price / Image are denormalized from the product at add time so the
// cart stays renderable even if the product is later edited or deleted.
// Uniqueness is defined by (productId, selectedSize).
type LineItem struct {
	ProductID    string  `json:"productId" firestore:"productId"`
	Name         string  `json:"name" firestore:"name"`
	Price        float64 `json:"price" firestore:"price"`
	Image        string  `json:"image" firestore:"image"`
	SelectedSize string  `json:"selectedSize" firestore:"selectedSize"`
	Quantity     int     `json:"quantity" firestore:"quantity"`
}

// Cart represents "a cart document".
//   - docId = cartId (Firestore)
//   - Items: []LineItem
//   - ExpiresAt: for Firestore TTL (auto deletion), refreshed on each mutation
type Cart struct {
	// ID is Firestore docId (= client cart id).
	ID string `json:"id" firestore:"id"`

	// Items is a list of line items.
	// Uniqueness is defined by (productId, selectedSize).
	Items []LineItem `json:"items" firestore:"items"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
	ExpiresAt time.Time `json:"expiresAt" firestore:"expiresAt"`
}

// New creates a new cart doc.
// id is the Firestore docId (cartId). items can be nil (treated as empty).
func New(id string, items []LineItem, now time.Time) (*Cart, error) {
	docID := strings.TrimSpace(id)

	c := &Cart{
		ID:        docID,
		Items:     cloneItems(items),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(DefaultCartTTL),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// AddItem increases quantity for a (productId, selectedSize) pair, appending
// a new line if the pair is not present yet. qty must be >= 1.
// The incoming item carries the denormalized name/price/image snapshot;
// on merge the existing snapshot is kept (first add wins).
func (c *Cart) AddItem(item LineItem, qty int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}

	pid := strings.TrimSpace(item.ProductID)
	size := strings.TrimSpace(item.SelectedSize)
	if pid == "" || qty <= 0 || item.Price < 0 {
		return ErrInvalidItem
	}

	if c.Items == nil {
		c.Items = []LineItem{}
	}

	idx := findItemIndex(c.Items, pid, size)
	if idx >= 0 {
		c.Items[idx].Quantity += qty
	} else {
		c.Items = append(c.Items, LineItem{
			ProductID:    pid,
			Name:         strings.TrimSpace(item.Name),
			Price:        item.Price,
			Image:        strings.TrimSpace(item.Image),
			SelectedSize: size,
			Quantity:     qty,
		})
	}

	c.touch(now)
	return c.validate()
}

// SetQuantity sets quantity for a (productId, selectedSize) pair.
// If qty <= 0, the line is removed.
//
// NOTE: the original frontend keyed remove/update by bare productId, which
// silently hit every size variant of the product while the add path keyed by
// (productId, selectedSize). We key by the pair end-to-end.
func (c *Cart) SetQuantity(productID, selectedSize string, qty int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}

	pid := strings.TrimSpace(productID)
	size := strings.TrimSpace(selectedSize)
	if pid == "" {
		return ErrInvalidItem
	}

	if c.Items == nil {
		c.Items = []LineItem{}
	}

	idx := findItemIndex(c.Items, pid, size)

	if qty <= 0 {
		if idx >= 0 {
			c.Items = removeIndex(c.Items, idx)
		}
		c.touch(now)
		return c.validate()
	}

	if idx < 0 {
		// Unknown line: nothing to set (the add path owns line creation).
		return ErrInvalidItem
	}

	c.Items[idx].Quantity = qty
	c.touch(now)
	return c.validate()
}

// RemoveItem removes a (productId, selectedSize) pair from the cart.
func (c *Cart) RemoveItem(productID, selectedSize string, now time.Time) error {
	return c.SetQuantity(productID, selectedSize, 0, now)
}

// Clear empties the line list.
func (c *Cart) Clear(now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	c.Items = []LineItem{}
	c.touch(now)
	return c.validate()
}

// ItemCount is the sum of quantities across lines.
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Total is Σ(price × quantity) across lines.
func (c *Cart) Total() float64 {
	if c == nil {
		return 0
	}
	sum := 0.0
	for _, it := range c.Items {
		sum += it.Price * float64(it.Quantity)
	}
	// cents precision (price is a currency amount)
	return math.Round(sum*100) / 100
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

func (c *Cart) touch(now time.Time) {
	c.UpdatedAt = now
	c.ExpiresAt = now.Add(DefaultCartTTL)
}

func (c *Cart) validate() error {
	if c == nil {
		return ErrInvalidCart
	}

	if strings.TrimSpace(c.ID) == "" {
		return ErrInvalidCart
	}

	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() || c.ExpiresAt.IsZero() {
		return ErrInvalidCart
	}
	if c.UpdatedAt.Before(c.CreatedAt) {
		return ErrInvalidCart
	}
	if c.ExpiresAt.Before(c.UpdatedAt) {
		return ErrInvalidCart
	}

	if len(c.Items) == 0 {
		return nil
	}

	// normalize + merge duplicates + stable order
	c.Items = normalizeAndMerge(c.Items)

	for _, it := range c.Items {
		if strings.TrimSpace(it.ProductID) == "" || it.Quantity <= 0 || it.Price < 0 {
			return ErrInvalidItem
		}
	}

	return nil
}

// ----------------------------
// Helpers
// ----------------------------

func findItemIndex(items []LineItem, productID, selectedSize string) int {
	for i := range items {
		if items[i].ProductID == productID && items[i].SelectedSize == selectedSize {
			return i
		}
	}
	return -1
}

func removeIndex(items []LineItem, idx int) []LineItem {
	if idx < 0 || idx >= len(items) {
		return items
	}
	// preserve order
	return append(items[:idx], items[idx+1:]...)
}

type itemKey struct {
	pid  string
	size string
}

func normalizeAndMerge(src []LineItem) []LineItem {
	m := map[itemKey]LineItem{}
	order := make([]itemKey, 0, len(src))

	for _, it := range src {
		pid := strings.TrimSpace(it.ProductID)
		size := strings.TrimSpace(it.SelectedSize)
		if pid == "" || it.Quantity <= 0 || it.Price < 0 {
			continue
		}

		k := itemKey{pid: pid, size: size}

		if exist, ok := m[k]; ok {
			exist.Quantity += it.Quantity
			m[k] = exist
		} else {
			m[k] = LineItem{
				ProductID:    pid,
				Name:         strings.TrimSpace(it.Name),
				Price:        it.Price,
				Image:        strings.TrimSpace(it.Image),
				SelectedSize: size,
				Quantity:     it.Quantity,
			}
			order = append(order, k)
		}
	}

	// stable order: insertion order of first occurrence
	out := make([]LineItem, 0, len(order))
	for _, k := range order {
		out = append(out, m[k])
	}
	return out
}

func cloneItems(src []LineItem) []LineItem {
	if len(src) == 0 {
		return []LineItem{}
	}
	cp := make([]LineItem, 0, len(src))
	cp = append(cp, src...)
	return normalizeAndMerge(cp)
}

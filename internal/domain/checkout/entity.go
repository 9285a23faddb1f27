// internal/domain/checkout/entity.go
package checkout

import (
	"errors"
	"strings"
	"time"

	cartdom "luxe/internal/domain/cart"
)

var (
	ErrEmptyCart       = errors.New("checkout: cart is empty")
	ErrMissingShipping = errors.New("checkout: missing shipping field")
)

// ShippingInfo is the plain checkout form. Validation is "required" only.
type ShippingInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// Normalize trims every field in place.
func (s *ShippingInfo) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	s.Phone = strings.TrimSpace(s.Phone)
	s.Address = strings.TrimSpace(s.Address)
	s.City = strings.TrimSpace(s.City)
	s.State = strings.TrimSpace(s.State)
	s.Zip = strings.TrimSpace(s.Zip)
}

// Validate checks that every field is present.
func (s ShippingInfo) Validate() error {
	for _, v := range []string{s.Name, s.Email, s.Phone, s.Address, s.City, s.State, s.Zip} {
		if strings.TrimSpace(v) == "" {
			return ErrMissingShipping
		}
	}
	return nil
}

// FullAddress renders "address, city, state zip" the way the outgoing
// message expects it.
func (s ShippingInfo) FullAddress() string {
	return s.Address + ", " + s.City + ", " + s.State + " " + s.Zip
}

// OrderSummary is the snapshot handed off at checkout. It is never
// persisted: the only durable traces of an order are the outgoing message
// and the rendered image.
type OrderSummary struct {
	Items    []cartdom.LineItem
	Total    float64
	Shipping ShippingInfo
	PlacedAt time.Time
}

// NewOrderSummary builds the summary from a non-empty cart.
func NewOrderSummary(c *cartdom.Cart, shipping ShippingInfo, now time.Time) (OrderSummary, error) {
	if c == nil || c.IsEmpty() {
		return OrderSummary{}, ErrEmptyCart
	}

	shipping.Normalize()
	if err := shipping.Validate(); err != nil {
		return OrderSummary{}, err
	}

	items := make([]cartdom.LineItem, len(c.Items))
	copy(items, c.Items)

	return OrderSummary{
		Items:    items,
		Total:    c.Total(),
		Shipping: shipping,
		PlacedAt: now,
	}, nil
}

// internal/domain/product/entity.go
package product

import (
	"errors"
	"math"
	"strings"
	"time"
)

// MaxImages is the dashboard upload ceiling per product.
const MaxImages = 5

// SaleCategory is the free-form category tag that flags a product as on sale.
const SaleCategory = "sale"

var (
	ErrInvalidID        = errors.New("product: invalid id")
	ErrInvalidName      = errors.New("product: invalid name")
	ErrInvalidPrice     = errors.New("product: invalid price")
	ErrInvalidSalePrice = errors.New("product: sale price must be lower than price")
	ErrTooManyImages    = errors.New("product: too many images")
	ErrNotFound         = errors.New("product: not found")
)

// Product エンティティ。カタログ/ダッシュボード双方から参照される。
// Images is an ordered list of public URLs; Categories doubles as navigation
// sections and ad-hoc flags (e.g. "new-arrivals", "sale").
type Product struct {
	ID          string   `json:"id" firestore:"id"`
	Name        string   `json:"name" firestore:"name"`
	Price       float64  `json:"price" firestore:"price"`
	Description string   `json:"description,omitempty" firestore:"description,omitempty"`
	Images      []string `json:"images" firestore:"images"`
	Sizes       []string `json:"sizes,omitempty" firestore:"sizes,omitempty"`
	Categories  []string `json:"categories,omitempty" firestore:"categories,omitempty"`

	// Sale fields: both set together via MarkAsSale, cleared via RemoveSale.
	SalePrice      *float64 `json:"salePrice,omitempty" firestore:"salePrice,omitempty"`
	SalePercentage *int     `json:"salePercentage,omitempty" firestore:"salePercentage,omitempty"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// New constructs a validated Product.
func New(
	id, name string,
	price float64,
	description string,
	images, sizes, categories []string,
	now time.Time,
) (Product, error) {
	p := Product{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		Price:       price,
		Description: strings.TrimSpace(description),
		Images:      normalizeList(images),
		Sizes:       normalizeList(sizes),
		Categories:  normalizeList(categories),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := p.validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// MarkAsSale validates the sale price, computes the percentage discount and
// adds the "sale" category tag.
// salePercentage = round((price - salePrice) / price * 100)
func (p *Product) MarkAsSale(salePrice float64, now time.Time) error {
	if salePrice <= 0 {
		return ErrInvalidSalePrice
	}
	if salePrice >= p.Price {
		return ErrInvalidSalePrice
	}

	pct := int(math.Round((p.Price - salePrice) / p.Price * 100))

	p.SalePrice = &salePrice
	p.SalePercentage = &pct
	if !p.HasCategory(SaleCategory) {
		p.Categories = append(p.Categories, SaleCategory)
	}
	p.UpdatedAt = now
	return nil
}

// RemoveSale clears the sale fields and drops the "sale" tag.
func (p *Product) RemoveSale(now time.Time) {
	p.SalePrice = nil
	p.SalePercentage = nil

	kept := p.Categories[:0]
	for _, c := range p.Categories {
		if c != SaleCategory {
			kept = append(kept, c)
		}
	}
	p.Categories = kept
	p.UpdatedAt = now
}

// OnSale reports whether the product currently carries a sale price.
func (p *Product) OnSale() bool {
	return p.SalePrice != nil
}

// EffectivePrice is the sale price when on sale, otherwise the list price.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// HasCategory reports whether the product carries the given category tag.
func (p *Product) HasCategory(tag string) bool {
	for _, c := range p.Categories {
		if c == tag {
			return true
		}
	}
	return false
}

// HasSize reports whether the product offers the given size.
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

func (p *Product) validate() error {
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.Price <= 0 {
		return ErrInvalidPrice
	}
	if len(p.Images) > MaxImages {
		return ErrTooManyImages
	}
	if p.SalePrice != nil && *p.SalePrice >= p.Price {
		return ErrInvalidSalePrice
	}
	return nil
}

// Validate exposes invariant checks for updates assembled field by field
// (dashboard edit form).
func (p *Product) Validate() error {
	return p.validate()
}

func normalizeList(src []string) []string {
	if len(src) == 0 {
		return nil
	}
	out := make([]string, 0, len(src))
	for _, s := range src {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

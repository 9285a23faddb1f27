// internal/application/query/catalog/catalog_query.go
package catalog

import (
	"context"
	"errors"
	"strings"

	proddom "luxe/internal/domain/product"
)

var ErrRepoNil = errors.New("catalog_query: repository is nil")

// Filter is the client-side filter set applied after the fetch. The whole
// result set is held in memory; there is no pagination.
type Filter struct {
	// Search is a case-insensitive substring match on the product name.
	Search string
	// MinPrice/MaxPrice bound the effective (sale-aware) price; nil = open.
	MinPrice *float64
	MaxPrice *float64
	// Size keeps only products offering the exact size tag.
	Size string
}

// Query serves the catalog list and detail reads.
type Query struct {
	repo proddom.Repository
}

func NewQuery(repo proddom.Repository) *Query {
	return &Query{repo: repo}
}

// List fetches all products, or the products carrying the category tag when
// category is non-empty (server-side array-contains), then applies the
// in-memory filters.
func (q *Query) List(ctx context.Context, category string, f Filter) ([]proddom.Product, error) {
	if q == nil || q.repo == nil {
		return nil, ErrRepoNil
	}

	var (
		items []proddom.Product
		err   error
	)

	cat := strings.TrimSpace(category)
	if cat != "" {
		items, err = q.repo.GetByCategory(ctx, cat)
	} else {
		items, err = q.repo.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	return applyFilter(items, f), nil
}

// GetByID returns one product; missing products surface as
// product.ErrNotFound so the handler can render the distinct not-found
// state instead of an error page.
func (q *Query) GetByID(ctx context.Context, id string) (proddom.Product, error) {
	if q == nil || q.repo == nil {
		return proddom.Product{}, ErrRepoNil
	}
	return q.repo.GetByID(ctx, strings.TrimSpace(id))
}

func applyFilter(items []proddom.Product, f Filter) []proddom.Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	size := strings.TrimSpace(f.Size)

	out := make([]proddom.Product, 0, len(items))
	for _, p := range items {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}

		price := p.EffectivePrice()
		if f.MinPrice != nil && price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && price > *f.MaxPrice {
			continue
		}

		if size != "" && !p.HasSize(size) {
			continue
		}

		out = append(out, p)
	}
	return out
}

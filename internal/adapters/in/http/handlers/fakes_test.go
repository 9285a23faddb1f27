// internal/adapters/in/http/handlers/fakes_test.go
package handlers

import (
	"context"
	"fmt"
	"time"

	cartdom "luxe/internal/domain/cart"
	proddom "luxe/internal/domain/product"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// ── cart ──

type fakeCartRepo struct {
	docs map[string]cartdom.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{docs: map[string]cartdom.Cart{}}
}

func (r *fakeCartRepo) GetByID(_ context.Context, cartID string) (*cartdom.Cart, error) {
	c, ok := r.docs[cartID]
	if !ok {
		return nil, nil
	}
	cp := c
	cp.Items = append([]cartdom.LineItem(nil), c.Items...)
	return &cp, nil
}

func (r *fakeCartRepo) Upsert(_ context.Context, c *cartdom.Cart) error {
	cp := *c
	cp.Items = append([]cartdom.LineItem(nil), c.Items...)
	r.docs[c.ID] = cp
	return nil
}

func (r *fakeCartRepo) DeleteByID(_ context.Context, cartID string) error {
	delete(r.docs, cartID)
	return nil
}

// ── product ──

type fakeProductRepo struct {
	docs map[string]proddom.Product
	seq  int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{docs: map[string]proddom.Product{}}
}

func (r *fakeProductRepo) GetAll(_ context.Context) ([]proddom.Product, error) {
	out := make([]proddom.Product, 0, len(r.docs))
	for _, p := range r.docs {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) GetByCategory(_ context.Context, category string) ([]proddom.Product, error) {
	var out []proddom.Product
	for _, p := range r.docs {
		if p.HasCategory(category) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (proddom.Product, error) {
	p, ok := r.docs[id]
	if !ok {
		return proddom.Product{}, proddom.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) Create(_ context.Context, p proddom.Product) (proddom.Product, error) {
	r.seq++
	p.ID = fmt.Sprintf("gen-%d", r.seq)
	r.docs[p.ID] = p
	return p, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p proddom.Product) error {
	if _, ok := r.docs[p.ID]; !ok {
		return proddom.ErrNotFound
	}
	r.docs[p.ID] = p
	return nil
}

func (r *fakeProductRepo) DeleteByID(_ context.Context, id string) error {
	delete(r.docs, id)
	return nil
}

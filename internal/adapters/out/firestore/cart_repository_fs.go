// internal/adapters/out/firestore/cart_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "luxe/internal/domain/cart"
)

const cartCollection = "carts"

// CartRepositoryFS implements cart.Repository on Firestore.
// One document per cart, keyed by the client-issued cart id.
type CartRepositoryFS struct {
	Client *firestore.Client
}

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client}
}

func (r *CartRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(cartCollection)
}

// GetByID returns (nil, nil) when no document exists for the id.
func (r *CartRepositoryFS) GetByID(ctx context.Context, id string) (*cartdom.Cart, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, cartdom.ErrInvalidCart
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	doc := cartDocFromSnapshot(snap)
	return doc.toDomain(snap.Ref.ID), nil
}

// Upsert writes the full document (Set, not Update) so stale fields
// never survive a rewrite.
func (r *CartRepositoryFS) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}
	if c == nil {
		return cartdom.ErrInvalidCart
	}
	id := strings.TrimSpace(c.ID)
	if id == "" {
		return cartdom.ErrInvalidCart
	}

	_, err := r.col().Doc(id).Set(ctx, cartDocFromDomain(c))
	return err
}

func (r *CartRepositoryFS) DeleteByID(ctx context.Context, id string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return cartdom.ErrInvalidCart
	}

	_, err := r.col().Doc(id).Delete(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return err
	}
	return nil
}

// ============================================================
// document mapping
// ============================================================

type cartItemDoc struct {
	ProductID    string  `firestore:"productId"`
	Name         string  `firestore:"name"`
	Price        float64 `firestore:"price"`
	Image        string  `firestore:"image"`
	SelectedSize string  `firestore:"selectedSize"`
	Quantity     int     `firestore:"quantity"`
}

type cartDoc struct {
	Items     []cartItemDoc `firestore:"items"`
	CreatedAt time.Time     `firestore:"createdAt"`
	UpdatedAt time.Time     `firestore:"updatedAt"`
	ExpiresAt time.Time     `firestore:"expiresAt"`
}

func cartDocFromDomain(c *cartdom.Cart) cartDoc {
	items := make([]cartItemDoc, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, cartItemDoc{
			ProductID:    it.ProductID,
			Name:         it.Name,
			Price:        it.Price,
			Image:        it.Image,
			SelectedSize: it.SelectedSize,
			Quantity:     it.Quantity,
		})
	}
	return cartDoc{
		Items:     items,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		ExpiresAt: c.ExpiresAt,
	}
}

// cartDocFromSnapshot decodes defensively: carts are written by older
// clients too, so malformed line items are dropped (with a log line)
// instead of failing the whole read.
func cartDocFromSnapshot(snap *firestore.DocumentSnapshot) cartDoc {
	data := snap.Data()

	var doc cartDoc
	doc.CreatedAt = asTime(data["createdAt"])
	doc.UpdatedAt = asTime(data["updatedAt"])
	doc.ExpiresAt = asTime(data["expiresAt"])

	rawItems, _ := data["items"].([]interface{})
	for i, raw := range rawItems {
		m, ok := raw.(map[string]interface{})
		if !ok {
			log.Printf("[cart-fs] %s: item[%d] is not a map, dropped", snap.Ref.ID, i)
			continue
		}
		item := cartItemDoc{
			ProductID:    asString(m["productId"]),
			Name:         asString(m["name"]),
			Price:        asFloat(m["price"]),
			Image:        asString(m["image"]),
			SelectedSize: asString(m["selectedSize"]),
			Quantity:     asInt(m["quantity"]),
		}
		if item.ProductID == "" || item.Quantity <= 0 {
			log.Printf("[cart-fs] %s: item[%d] missing productId/quantity, dropped", snap.Ref.ID, i)
			continue
		}
		doc.Items = append(doc.Items, item)
	}
	return doc
}

func (d cartDoc) toDomain(id string) *cartdom.Cart {
	items := make([]cartdom.LineItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, cartdom.LineItem{
			ProductID:    it.ProductID,
			Name:         it.Name,
			Price:        it.Price,
			Image:        it.Image,
			SelectedSize: it.SelectedSize,
			Quantity:     it.Quantity,
		})
	}
	return &cartdom.Cart{
		ID:        id,
		Items:     items,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		ExpiresAt: d.ExpiresAt,
	}
}

// ============================================================
// loose-typed field helpers
// ============================================================

func asString(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func asInt(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func asTime(v interface{}) time.Time {
	t, _ := v.(time.Time)
	return t
}

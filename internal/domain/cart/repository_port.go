// internal/domain/cart/repository_port.go
package cart

import "context"

// Repository is a persistence port for Cart.
//
// Storage design (Firestore):
// - collection: carts
// - docId: cartId (the client's durable cart slot)
// - fields: items, createdAt, updatedAt, expiresAt
//
// TTL:
// - Configure Firestore TTL on the "expiresAt" field.
// - expiresAt is refreshed on each cart mutation (handled by domain via touch()).
//
// Not-found handling policy: return (nil, nil) and let the application layer
// treat nil as "no cart yet".
type Repository interface {
	GetByID(ctx context.Context, cartID string) (*Cart, error)

	// Upsert saves the full cart document (create or update).
	// Every mutation rewrites the whole line list; last write wins.
	Upsert(ctx context.Context, c *Cart) error

	DeleteByID(ctx context.Context, cartID string) error
}

// internal/domain/product/repository_port.go
package product

import "context"

// Repository is a persistence port for Product.
//
// Storage design (Firestore):
// - collection: products
// - docId: product id (generated on create)
// - category reads use an array-contains query on "categories"
//
// Missing products surface as ErrNotFound (never nil, nil).
type Repository interface {
	GetAll(ctx context.Context) ([]Product, error)
	GetByCategory(ctx context.Context, category string) ([]Product, error)
	GetByID(ctx context.Context, id string) (Product, error)

	// Create persists a new product and returns it with the generated id.
	Create(ctx context.Context, p Product) (Product, error)

	// Update overwrites the document by id (last write wins).
	Update(ctx context.Context, p Product) error

	DeleteByID(ctx context.Context, id string) error
}

// internal/adapters/out/firestore/product_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	proddom "luxe/internal/domain/product"
)

const productCollection = "products"

// ProductRepositoryFS implements product.Repository on Firestore.
type ProductRepositoryFS struct {
	Client *firestore.Client
}

func NewProductRepositoryFS(client *firestore.Client) *ProductRepositoryFS {
	return &ProductRepositoryFS{Client: client}
}

func (r *ProductRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(productCollection)
}

func (r *ProductRepositoryFS) GetAll(ctx context.Context) ([]proddom.Product, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}
	return r.collect(r.col().Documents(ctx))
}

// GetByCategory narrows server-side via array-contains on the
// categories tag list.
func (r *ProductRepositoryFS) GetByCategory(ctx context.Context, category string) ([]proddom.Product, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return r.GetAll(ctx)
	}

	q := r.col().Where("categories", "array-contains", category)
	return r.collect(q.Documents(ctx))
}

func (r *ProductRepositoryFS) GetByID(ctx context.Context, id string) (proddom.Product, error) {
	if r.Client == nil {
		return proddom.Product{}, errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return proddom.Product{}, proddom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return proddom.Product{}, proddom.ErrNotFound
		}
		return proddom.Product{}, err
	}
	return docToProduct(snap)
}

// Create assigns a Firestore auto-ID when the entity carries none.
func (r *ProductRepositoryFS) Create(ctx context.Context, v proddom.Product) (proddom.Product, error) {
	if r.Client == nil {
		return proddom.Product{}, errors.New("firestore client is nil")
	}

	id := strings.TrimSpace(v.ID)
	var docRef *firestore.DocumentRef
	if id == "" {
		docRef = r.col().NewDoc()
		v.ID = docRef.ID
	} else {
		docRef = r.col().Doc(id)
		v.ID = id
	}

	if _, err := docRef.Create(ctx, productToDoc(v)); err != nil {
		return proddom.Product{}, err
	}
	return v, nil
}

// Update is a full-document rewrite; the usecase has already merged
// the editable fields into the entity.
func (r *ProductRepositoryFS) Update(ctx context.Context, v proddom.Product) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}
	id := strings.TrimSpace(v.ID)
	if id == "" {
		return proddom.ErrNotFound
	}
	v.ID = id

	_, err := r.col().Doc(id).Set(ctx, productToDoc(v))
	return err
}

func (r *ProductRepositoryFS) DeleteByID(ctx context.Context, id string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return proddom.ErrNotFound
	}

	_, err := r.col().Doc(id).Delete(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return err
	}
	return nil
}

func (r *ProductRepositoryFS) collect(it *firestore.DocumentIterator) ([]proddom.Product, error) {
	defer it.Stop()

	items := make([]proddom.Product, 0)
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		p, err := docToProduct(snap)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, nil
}

// ============================================================
// document mapping
// ============================================================

type productDoc struct {
	Name           string    `firestore:"name"`
	Price          float64   `firestore:"price"`
	Description    string    `firestore:"description,omitempty"`
	Images         []string  `firestore:"images"`
	Sizes          []string  `firestore:"sizes,omitempty"`
	Categories     []string  `firestore:"categories,omitempty"`
	SalePrice      *float64  `firestore:"salePrice,omitempty"`
	SalePercentage *int      `firestore:"salePercentage,omitempty"`
	CreatedAt      time.Time `firestore:"createdAt"`
	UpdatedAt      time.Time `firestore:"updatedAt"`
}

func productToDoc(v proddom.Product) productDoc {
	return productDoc{
		Name:           v.Name,
		Price:          v.Price,
		Description:    v.Description,
		Images:         v.Images,
		Sizes:          v.Sizes,
		Categories:     v.Categories,
		SalePrice:      v.SalePrice,
		SalePercentage: v.SalePercentage,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func docToProduct(snap *firestore.DocumentSnapshot) (proddom.Product, error) {
	var doc productDoc
	if err := snap.DataTo(&doc); err != nil {
		return proddom.Product{}, err
	}
	return proddom.Product{
		ID:             snap.Ref.ID,
		Name:           doc.Name,
		Price:          doc.Price,
		Description:    doc.Description,
		Images:         doc.Images,
		Sizes:          doc.Sizes,
		Categories:     doc.Categories,
		SalePrice:      doc.SalePrice,
		SalePercentage: doc.SalePercentage,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}, nil
}

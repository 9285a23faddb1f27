// internal/application/usecase/product_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	proddom "luxe/internal/domain/product"
)

var (
	ErrProductInvalidArgument = errors.New("product_usecase: invalid argument")
	ErrProductInvalidPrice    = errors.New("product_usecase: invalid price")
)

// ProductUsecase coordinates dashboard CRUD and sale tagging.
type ProductUsecase struct {
	repo   proddom.Repository
	images ImageRemover // nil when the image backend cannot delete
	clock  Clock
}

func NewProductUsecase(repo proddom.Repository) *ProductUsecase {
	return &ProductUsecase{repo: repo, clock: systemClock{}}
}

func NewProductUsecaseWithClock(repo proddom.Repository, clock Clock) *ProductUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &ProductUsecase{repo: repo, clock: clock}
}

// WithImageRemover enables image binary cleanup when a product is deleted.
func (uc *ProductUsecase) WithImageRemover(r ImageRemover) *ProductUsecase {
	uc.images = r
	return uc
}

// SaveProductInput is the dashboard form payload. Price arrives as the
// numeric-sanitized string the form produces.
type SaveProductInput struct {
	Name        string
	PriceText   string
	Description string
	Categories  []string
	Sizes       []string
	Images      []string
}

// ParsePrice reduces a form value to digits and a decimal point before
// parsing, mirroring the dashboard's input sanitization.
func ParsePrice(raw string) (float64, error) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return 0, ErrProductInvalidPrice
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, ErrProductInvalidPrice
	}
	return v, nil
}

// Create validates and persists a new product; the id is generated by the
// repository (document id).
func (uc *ProductUsecase) Create(ctx context.Context, in SaveProductInput) (proddom.Product, error) {
	price, err := ParsePrice(in.PriceText)
	if err != nil {
		return proddom.Product{}, err
	}

	p, err := proddom.New("", in.Name, price, in.Description, in.Images, in.Sizes, in.Categories, uc.clock.Now())
	if err != nil {
		return proddom.Product{}, err
	}

	return uc.repo.Create(ctx, p)
}

// Update rewrites the product fields by id. Sale fields survive the edit
// unless the new price invalidates them, in which case the sale is dropped.
func (uc *ProductUsecase) Update(ctx context.Context, id string, in SaveProductInput) (proddom.Product, error) {
	pid := strings.TrimSpace(id)
	if pid == "" {
		return proddom.Product{}, ErrProductInvalidArgument
	}

	price, err := ParsePrice(in.PriceText)
	if err != nil {
		return proddom.Product{}, err
	}

	existing, err := uc.repo.GetByID(ctx, pid)
	if err != nil {
		return proddom.Product{}, err
	}

	now := uc.clock.Now()

	updated, err := proddom.New(pid, in.Name, price, in.Description, in.Images, in.Sizes, in.Categories, now)
	if err != nil {
		return proddom.Product{}, err
	}
	updated.CreatedAt = existing.CreatedAt

	if existing.SalePrice != nil {
		if *existing.SalePrice < price {
			if err := updated.MarkAsSale(*existing.SalePrice, now); err != nil {
				return proddom.Product{}, err
			}
		}
		// else: new price makes the old sale meaningless; leave it cleared
	}

	if err := uc.repo.Update(ctx, updated); err != nil {
		return proddom.Product{}, err
	}
	return updated, nil
}

// Delete removes the product document by id, then cleans up the hosted
// image binaries best-effort: a failed cleanup leaves an orphaned object,
// never a half-deleted product.
func (uc *ProductUsecase) Delete(ctx context.Context, id string) error {
	pid := strings.TrimSpace(id)
	if pid == "" {
		return ErrProductInvalidArgument
	}

	var images []string
	if uc.images != nil {
		if p, err := uc.repo.GetByID(ctx, pid); err == nil {
			images = p.Images
		}
	}

	if err := uc.repo.DeleteByID(ctx, pid); err != nil {
		return err
	}

	for _, u := range images {
		if err := uc.images.Delete(ctx, u); err != nil {
			log.Printf("[product_usecase] image cleanup failed url=%s err=%v", u, err)
		}
	}
	return nil
}

// GetByID fetches one product (ErrNotFound mapped by the repository).
func (uc *ProductUsecase) GetByID(ctx context.Context, id string) (proddom.Product, error) {
	pid := strings.TrimSpace(id)
	if pid == "" {
		return proddom.Product{}, ErrProductInvalidArgument
	}
	return uc.repo.GetByID(ctx, pid)
}

// MarkAsSale validates salePrice < price, computes the percentage discount
// and tags the product with the "sale" category.
func (uc *ProductUsecase) MarkAsSale(ctx context.Context, id string, salePrice float64) (proddom.Product, error) {
	pid := strings.TrimSpace(id)
	if pid == "" {
		return proddom.Product{}, ErrProductInvalidArgument
	}

	p, err := uc.repo.GetByID(ctx, pid)
	if err != nil {
		return proddom.Product{}, err
	}

	if err := p.MarkAsSale(salePrice, uc.clock.Now()); err != nil {
		return proddom.Product{}, err
	}

	if err := uc.repo.Update(ctx, p); err != nil {
		return proddom.Product{}, err
	}
	return p, nil
}

// RemoveSale clears the sale fields and the "sale" tag.
func (uc *ProductUsecase) RemoveSale(ctx context.Context, id string) (proddom.Product, error) {
	pid := strings.TrimSpace(id)
	if pid == "" {
		return proddom.Product{}, ErrProductInvalidArgument
	}

	p, err := uc.repo.GetByID(ctx, pid)
	if err != nil {
		return proddom.Product{}, err
	}

	p.RemoveSale(uc.clock.Now())

	if err := uc.repo.Update(ctx, p); err != nil {
		return proddom.Product{}, err
	}
	return p, nil
}

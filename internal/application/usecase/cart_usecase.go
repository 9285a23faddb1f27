// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	cartdom "luxe/internal/domain/cart"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
	ErrCartNotFound        = errors.New("cart_usecase: not found")
)

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// CartUsecase coordinates cart operations. Every mutation persists the full
// line list (the durable "cart slot"), so a reload always reproduces the
// last observed state.
type CartUsecase struct {
	repo  cartdom.Repository
	clock Clock
}

func NewCartUsecase(repo cartdom.Repository) *CartUsecase {
	return &CartUsecase{
		repo:  repo,
		clock: systemClock{},
	}
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(repo cartdom.Repository, clock Clock) *CartUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &CartUsecase{repo: repo, clock: clock}
}

// Get returns the cart for cartID, or ErrCartNotFound when no cart exists.
func (uc *CartUsecase) Get(ctx context.Context, cartID string) (*cartdom.Cart, error) {
	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.repo.GetByID(ctx, cid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}
	return c, nil
}

// GetOrCreate returns an existing cart; if absent, creates an empty one
// (not yet persisted: an empty cart document is only written once the first
// mutation happens).
func (uc *CartUsecase) GetOrCreate(ctx context.Context, cartID string) (*cartdom.Cart, error) {
	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.repo.GetByID(ctx, cid)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	return cartdom.New(cid, nil, uc.clock.Now())
}

// AddItem merges qty into the (productId, selectedSize) line and persists.
func (uc *CartUsecase) AddItem(ctx context.Context, cartID string, item cartdom.LineItem, qty int) (*cartdom.Cart, error) {
	cid := strings.TrimSpace(cartID)
	if cid == "" || qty <= 0 {
		return nil, ErrCartInvalidArgument
	}

	now := uc.clock.Now()

	c, err := uc.repo.GetByID(ctx, cid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c, err = cartdom.New(cid, nil, now)
		if err != nil {
			return nil, err
		}
	}

	if err := c.AddItem(item, qty, now); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetQuantity sets the line quantity; qty <= 0 removes the line.
func (uc *CartUsecase) SetQuantity(ctx context.Context, cartID, productID, selectedSize string, qty int) (*cartdom.Cart, error) {
	cid := strings.TrimSpace(cartID)
	pid := strings.TrimSpace(productID)
	if cid == "" || pid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.repo.GetByID(ctx, cid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}

	if err := c.SetQuantity(pid, selectedSize, qty, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem removes the (productId, selectedSize) line and persists.
func (uc *CartUsecase) RemoveItem(ctx context.Context, cartID, productID, selectedSize string) (*cartdom.Cart, error) {
	return uc.SetQuantity(ctx, cartID, productID, selectedSize, 0)
}

// Clear empties the line list and persists the empty cart (idempotent: a
// missing cart is already clear).
func (uc *CartUsecase) Clear(ctx context.Context, cartID string) (*cartdom.Cart, error) {
	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return nil, ErrCartInvalidArgument
	}

	now := uc.clock.Now()

	c, err := uc.repo.GetByID(ctx, cid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return cartdom.New(cid, nil, now)
	}

	if err := c.Clear(now); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

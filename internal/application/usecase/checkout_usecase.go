// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	cartdom "luxe/internal/domain/cart"
	checkoutdom "luxe/internal/domain/checkout"
)

var (
	ErrCheckoutInvalidArgument = errors.New("checkout_usecase: invalid argument")
	ErrCheckoutEmptyCart       = errors.New("checkout_usecase: cart is empty")
)

// SnapshotRenderer renders the order summary HTML to a raster image (PNG).
type SnapshotRenderer interface {
	RenderPNG(ctx context.Context, html string) ([]byte, error)
}

// OrderMailer is the optional email handoff channel.
type OrderMailer interface {
	SendOrderMessage(ctx context.Context, message string) error
}

// CheckoutUsecase orchestrates the order handoff:
// summary -> snapshot render -> messaging deep link -> cart clear.
// No order record is written anywhere; the deep link and the snapshot are
// the only artifacts.
type CheckoutUsecase struct {
	cartRepo cartdom.Repository
	renderer SnapshotRenderer
	mailer   OrderMailer // nil when the email channel is not configured
	waNumber string
	clock    Clock
}

func NewCheckoutUsecase(cartRepo cartdom.Repository, renderer SnapshotRenderer, mailer OrderMailer, waNumber string) *CheckoutUsecase {
	return &CheckoutUsecase{
		cartRepo: cartRepo,
		renderer: renderer,
		mailer:   mailer,
		waNumber: strings.TrimSpace(waNumber),
		clock:    systemClock{},
	}
}

// NewCheckoutUsecaseWithClock is useful for tests.
func NewCheckoutUsecaseWithClock(cartRepo cartdom.Repository, renderer SnapshotRenderer, mailer OrderMailer, waNumber string, clock Clock) *CheckoutUsecase {
	uc := NewCheckoutUsecase(cartRepo, renderer, mailer, waNumber)
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// PlaceOrderResult carries everything the client needs to finish the order
// on its side.
type PlaceOrderResult struct {
	Summary     checkoutdom.OrderSummary
	Message     string
	DeepLink    string
	SnapshotPNG []byte // nil when rendering failed (best-effort)
	Emailed     bool
}

// PlaceOrder requires a non-empty cart; on success the cart is cleared.
//
// Snapshot rendering and the email channel are both best-effort: their
// failures are logged and surfaced through the result, never fatal.
func (uc *CheckoutUsecase) PlaceOrder(ctx context.Context, cartID string, shipping checkoutdom.ShippingInfo) (PlaceOrderResult, error) {
	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return PlaceOrderResult{}, ErrCheckoutInvalidArgument
	}

	c, err := uc.cartRepo.GetByID(ctx, cid)
	if err != nil {
		return PlaceOrderResult{}, err
	}
	if c == nil || c.IsEmpty() {
		return PlaceOrderResult{}, ErrCheckoutEmptyCart
	}

	now := uc.clock.Now()

	summary, err := checkoutdom.NewOrderSummary(c, shipping, now)
	if err != nil {
		if errors.Is(err, checkoutdom.ErrEmptyCart) {
			return PlaceOrderResult{}, ErrCheckoutEmptyCart
		}
		return PlaceOrderResult{}, err
	}

	res := PlaceOrderResult{Summary: summary}
	res.Message = checkoutdom.BuildMessage(summary)
	res.DeepLink = checkoutdom.DeepLink(uc.waNumber, res.Message)

	if uc.renderer != nil {
		png, rerr := uc.renderer.RenderPNG(ctx, checkoutdom.SummaryHTML(summary))
		if rerr != nil {
			log.Printf("[checkout_usecase] snapshot render failed: %v", rerr)
		} else {
			res.SnapshotPNG = png
		}
	}

	if uc.mailer != nil {
		if merr := uc.mailer.SendOrderMessage(ctx, res.Message); merr != nil {
			log.Printf("[checkout_usecase] order mail failed: %v", merr)
		} else {
			res.Emailed = true
		}
	}

	// Hand-off succeeded; empty the durable cart slot.
	if err := c.Clear(now); err != nil {
		return PlaceOrderResult{}, err
	}
	if err := uc.cartRepo.Upsert(ctx, c); err != nil {
		return PlaceOrderResult{}, err
	}

	return res, nil
}

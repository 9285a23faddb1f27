// internal/platform/di/container.go
package di

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	httpin "luxe/internal/adapters/in/http"
	outdb "luxe/internal/adapters/out/db"
	outfs "luxe/internal/adapters/out/firestore"
	outgcs "luxe/internal/adapters/out/gcs"
	outmail "luxe/internal/adapters/out/mail"
	outsnap "luxe/internal/adapters/out/snapshot"
	catalogqry "luxe/internal/application/query/catalog"
	usecase "luxe/internal/application/usecase"
	cartdom "luxe/internal/domain/cart"
	proddom "luxe/internal/domain/product"
	sessiondom "luxe/internal/domain/session"
	"luxe/internal/infra/firebaseauth"
	"luxe/internal/infra/imagehost"
	"luxe/internal/platform/di/shared"
)

// Container wires repositories, usecases and the HTTP router.
type Container struct {
	CatalogQuery *catalogqry.Query
	CartUC       *usecase.CartUsecase
	CheckoutUC   *usecase.CheckoutUsecase
	AuthUC       *usecase.AuthUsecase
	ProductUC    *usecase.ProductUsecase
	ImageUC      *usecase.ImageUsecase

	Session *sessiondom.Container

	renderer *outsnap.ChromedpRenderer
	handler  http.Handler
}

// NewContainer builds the full application graph on top of shared infra.
func NewContainer(ctx context.Context, infra *shared.Infra) (*Container, error) {
	cfg := infra.Config
	c := &Container{}

	// ── Product repository: Postgres mirror wins when configured ──
	var productRepo proddom.Repository
	if infra.Postgres != nil {
		productRepo = outdb.NewProductRepositoryPG(infra.Postgres.Client)
		log.Printf("[di] product repository: postgres")
	} else {
		productRepo = outfs.NewProductRepositoryFS(infra.Firestore)
		log.Printf("[di] product repository: firestore")
	}

	var cartRepo cartdom.Repository = outfs.NewCartRepositoryFS(infra.Firestore)

	// ── Session / auth ──
	c.Session = sessiondom.NewContainer(cfg.AdminEmailList())
	c.Session.Subscribe(func(s sessiondom.State) {
		if s.Identity == nil {
			log.Printf("[session] signed out")
			return
		}
		log.Printf("[session] signed in uid=%s role=%s", s.Identity.UID, s.Role)
	})

	signer := firebaseauth.NewPasswordSigner(cfg.FirebaseWebAPIKey)
	var revoker usecase.TokenRevoker
	if infra.FirebaseAuth != nil {
		revoker = firebaseauth.NewTokenRevoker(infra.FirebaseAuth)
	}
	c.AuthUC = usecase.NewAuthUsecase(signer, revoker, c.Session)

	// ── Catalog / cart ──
	c.CatalogQuery = catalogqry.NewQuery(productRepo)
	c.CartUC = usecase.NewCartUsecase(cartRepo)

	// ── Image uploads: GCS bucket first, external host as fallback ──
	var imageRemover usecase.ImageRemover
	switch {
	case infra.GCS != nil && infra.ProductImageBucket != "":
		store := outgcs.NewProductImageRepositoryGCS(infra.GCS, infra.ProductImageBucket)
		c.ImageUC = usecase.NewImageUsecase(store)
		imageRemover = store
		log.Printf("[di] image store: gcs bucket=%s", infra.ProductImageBucket)
	case strings.TrimSpace(cfg.ImageHostBaseURL) != "":
		store := imagehost.NewHTTPUploader(cfg.ImageHostBaseURL, infra.ImageHostAPIKey)
		c.ImageUC = usecase.NewImageUsecase(store)
		log.Printf("[di] image store: external host")
	default:
		log.Printf("[di] WARN: no image store configured (dashboard uploads disabled)")
	}

	c.ProductUC = usecase.NewProductUsecase(productRepo)
	if imageRemover != nil {
		c.ProductUC = c.ProductUC.WithImageRemover(imageRemover)
	}

	// ── Checkout: snapshot + optional mail handoff ──
	c.renderer = outsnap.NewChromedpRenderer(os.Getenv("CHROME_REMOTE_URL"))

	var mailer usecase.OrderMailer
	if infra.SendGridAPIKey != "" && cfg.OrderMailFrom != "" && cfg.OrderMailTo != "" {
		client := outmail.NewSendGridClient(infra.SendGridAPIKey)
		mailer = outmail.NewOrderMailer(client, cfg.OrderMailFrom, cfg.OrderMailTo)
		log.Printf("[di] order mail handoff enabled to=%s", cfg.OrderMailTo)
	} else {
		log.Printf("[di] order mail handoff disabled")
	}

	c.CheckoutUC = usecase.NewCheckoutUsecase(cartRepo, c.renderer, mailer, cfg.WhatsAppNumber)

	// ── Router ──
	c.handler = httpin.NewRouter(httpin.RouterDeps{
		CatalogQuery: c.CatalogQuery,
		CartUC:       c.CartUC,
		CheckoutUC:   c.CheckoutUC,
		AuthUC:       c.AuthUC,
		ProductUC:    c.ProductUC,
		ImageUC:      c.ImageUC,
		FirebaseAuth: infra.FirebaseAuth,
		AdminEmails:  cfg.AdminEmailList(),
	})

	return c, nil
}

// Handler returns the wired HTTP router.
func (c *Container) Handler() http.Handler {
	return c.handler
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.renderer != nil {
		_ = c.renderer.Close()
	}
	return nil
}

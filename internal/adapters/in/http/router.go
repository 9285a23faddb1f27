// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"

	"luxe/internal/adapters/in/http/handlers"
	"luxe/internal/adapters/in/http/middleware"

	catalogqry "luxe/internal/application/query/catalog"
	usecase "luxe/internal/application/usecase"
)

// RouterDeps collects all usecases (and other dependencies) injected from main.go.
type RouterDeps struct {
	CatalogQuery *catalogqry.Query
	CartUC       *usecase.CartUsecase
	CheckoutUC   *usecase.CheckoutUsecase
	AuthUC       *usecase.AuthUsecase
	ProductUC    *usecase.ProductUsecase
	ImageUC      *usecase.ImageUsecase

	// Admin routes live behind token verification + allow-list check.
	FirebaseAuth *middleware.FirebaseAuthClient
	AdminEmails  []string
}

// NewRouter sets up HTTP routing for the storefront and the dashboard.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// Health check (always on)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// 以降、Usecase が存在するものだけマウントする
	if deps.CatalogQuery != nil {
		catalog := handlers.NewCatalogHandler(deps.CatalogQuery)
		mux.Handle("/catalog", catalog)
		mux.Handle("/catalog/", catalog)
	}

	if deps.CartUC != nil {
		cart := handlers.NewCartHandler(deps.CartUC)
		mux.Handle("/cart", cart)
		mux.Handle("/cart/", cart)
	}

	if deps.CheckoutUC != nil {
		mux.Handle("/checkout", handlers.NewCheckoutHandler(deps.CheckoutUC))
	}

	if deps.AuthUC != nil {
		mux.Handle("/auth/", handlers.NewAuthHandler(deps.AuthUC))
	}

	// ダッシュボード（管理者のみ）
	if deps.ProductUC != nil && deps.FirebaseAuth != nil {
		authMW := &middleware.AuthMiddleware{
			FirebaseAuth: deps.FirebaseAuth,
			AdminEmails:  deps.AdminEmails,
		}
		admin := handlers.NewProductAdminHandler(deps.ProductUC, deps.ImageUC)
		mux.Handle("/admin/", authMW.Handler(authMW.RequireAdmin(admin)))
	}

	return mux
}

// cmd/shop/main.go
package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"luxe/internal/adapters/in/http/middleware"
	appcfg "luxe/internal/infra/config"
	"luxe/internal/platform/di"
	shared "luxe/internal/platform/di/shared"
)

// atomicHandler allows swapping the underlying handler at runtime safely.
type atomicHandler struct {
	v atomic.Value // stores http.Handler
}

func newAtomicHandler(initial http.Handler) *atomicHandler {
	ah := &atomicHandler{}
	if initial == nil {
		initial = http.NotFoundHandler()
	}
	ah.v.Store(initial)
	return ah
}

func (h *atomicHandler) Store(next http.Handler) {
	if next == nil {
		return
	}
	h.v.Store(next)
}

func (h *atomicHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cur := h.v.Load()
	if cur == nil {
		http.NotFound(w, r)
		return
	}
	cur.(http.Handler).ServeHTTP(w, r)
}

func main() {
	ctx := context.Background()

	// ─────────────────────────────────────────────────────────────
	// Log output: stdout + (best-effort) file
	// ─────────────────────────────────────────────────────────────
	{
		logPath := "shop.log"
		if _, ok := os.LookupEnv("K_SERVICE"); ok {
			logPath = "/tmp/shop.log"
		}

		if f, err := os.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644); err == nil {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
			log.Printf("[boot] log output = stdout + %s", logPath)
		} else {
			log.Printf("[boot] WARN: could not open %s: %v (stdout only)", logPath, err)
		}
	}

	// ─────────────────────────────────────────────────────────────
	// Port resolution: env PORT (Cloud Run) → 8080
	// ─────────────────────────────────────────────────────────────
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	cors := middleware.CORS(appcfg.Load().AllowedOrigin)

	// ─────────────────────────────────────────────────────────────
	// Start listening ASAP with lightweight mux (healthz only)
	// ─────────────────────────────────────────────────────────────
	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	switcher := newAtomicHandler(cors(healthMux))

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      switcher,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─────────────────────────────────────────────────────────────
	// Lifetime management (infra/container)
	// ─────────────────────────────────────────────────────────────
	var infraHolder atomic.Value // stores *shared.Infra (or nil)
	infraHolder.Store((*shared.Infra)(nil))

	var contHolder atomic.Value // stores *di.Container (or nil)
	contHolder.Store((*di.Container)(nil))

	shuttingDown := make(chan struct{})

	// ─────────────────────────────────────────────────────────────
	// Graceful shutdown
	// ─────────────────────────────────────────────────────────────
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		sig := <-c

		close(shuttingDown)
		log.Printf("[boot] received signal: %v; shutting down...", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[boot] server shutdown error: %v", err)
		}

		if v := contHolder.Load(); v != nil {
			if cont, ok := v.(*di.Container); ok && cont != nil {
				log.Printf("[boot] closing container resources...")
				if err := cont.Close(); err != nil {
					log.Printf("[boot] container close error: %v", err)
				}
				contHolder.Store((*di.Container)(nil))
			}
		}

		if v := infraHolder.Load(); v != nil {
			if infra, ok := v.(*shared.Infra); ok && infra != nil {
				log.Printf("[boot] closing infra resources...")
				if err := infra.Close(); err != nil {
					log.Printf("[boot] infra close error: %v", err)
				}
				infraHolder.Store((*shared.Infra)(nil))
			}
		}

		close(idleConnsClosed)
	}()

	// Start server NOW (Cloud Run startup requirement)
	go func() {
		log.Printf("[boot] listening on :%s (shop)", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[boot] server error: %v", err)
		}
	}()

	// ─────────────────────────────────────────────────────────────
	// Heavy DI init in background; then swap handler to full app mux
	// ─────────────────────────────────────────────────────────────
	go func() {
		initCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()

		infra, err := shared.NewInfra(initCtx)
		if err != nil {
			log.Printf("[boot] WARN: shared infra init failed: %v (serving /healthz only)", err)
			return
		}
		infraHolder.Store(infra)

		cont, err := di.NewContainer(initCtx, infra)
		if err != nil {
			_ = infra.Close()
			infraHolder.Store((*shared.Infra)(nil))
			log.Printf("[boot] WARN: di init failed: %v (serving /healthz only)", err)
			return
		}
		contHolder.Store(cont)

		select {
		case <-shuttingDown:
			_ = cont.Close()
			_ = infra.Close()
			return
		default:
		}

		switcher.Store(cors(middleware.Recover(cont.Handler())))
		log.Printf("[boot] handler switched to shop router")
	}()

	<-idleConnsClosed
	log.Printf("[boot] server stopped")
}

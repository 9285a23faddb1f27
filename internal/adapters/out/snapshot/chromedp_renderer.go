// internal/adapters/out/snapshot/chromedp_renderer.go
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const (
	defaultRenderTimeout = 30 * time.Second

	// Mobile-ish portrait viewport; the summary card is narrow.
	viewportWidth  = 480
	viewportHeight = 800
)

// ChromedpRenderer rasterizes the order summary HTML into a PNG through
// headless Chrome. Satisfies usecase.SnapshotRenderer.
type ChromedpRenderer struct {
	timeout     time.Duration
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpRenderer launches (lazily) a headless Chrome allocator.
// remoteURL, when set, points at an already running Chrome instance
// (e.g. a browserless sidecar); otherwise a local binary is executed.
func NewChromedpRenderer(remoteURL string) *ChromedpRenderer {
	r := &ChromedpRenderer{timeout: defaultRenderTimeout}

	remoteURL = strings.TrimSpace(remoteURL)
	if remoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), remoteURL)
		return r
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return r
}

// RenderPNG loads the HTML into a blank tab and captures a full-page
// screenshot.
func (r *ChromedpRenderer) RenderPNG(ctx context.Context, html string) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, errors.New("snapshot: html is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx)
	defer browserCancel()

	start := time.Now()

	var png []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(viewportWidth, viewportHeight),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.FullScreenshot(&png, 100),
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("snapshot: render timed out after %v", r.timeout)
		}
		return nil, fmt.Errorf("snapshot: chromedp run: %w", err)
	}
	if len(png) == 0 {
		return nil, errors.New("snapshot: empty screenshot")
	}

	log.Printf("[snapshot] rendered %d bytes in %v", len(png), time.Since(start))
	return png, nil
}

// Close releases the Chrome allocator.
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

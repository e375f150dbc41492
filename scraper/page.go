package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// PageOptions tunes page-level waits.
type PageOptions struct {
	// IdleWindow is how long the network must stay quiet after load.
	IdleWindow time.Duration
}

// Page is one browser tab. Every method binds the caller's context to the
// underlying rod page, so deadlines propagate to CDP calls.
type Page struct {
	page   *rod.Page
	opts   PageOptions
	logger *slog.Logger
	router *rod.HijackRouter // set when trackers are blocked
}

// Navigate loads url and waits for the load event and network idle. Any
// failure, including the context deadline expiring during the idle wait,
// is returned as a CaptureError.
//
// The idle listener is registered before navigating so requests issued
// during load are counted.
func (p *Page) Navigate(ctx context.Context, url string) error {
	pg := p.page.Context(ctx)

	idle := p.opts.IdleWindow
	if idle <= 0 {
		idle = 500 * time.Millisecond
	}
	waitIdle := pg.WaitRequestIdle(idle, nil, nil, nil)

	if err := pg.Navigate(url); err != nil {
		return categorizeError(err, "navigation to target URL failed")
	}
	if err := pg.WaitLoad(); err != nil {
		return categorizeError(err, "page load did not complete")
	}
	waitIdle()
	if err := ctx.Err(); err != nil {
		return categorizeError(err, "network did not become idle")
	}
	return nil
}

// Evaluate runs a JavaScript function in the page, awaiting a returned
// promise, and returns the result encoded as JSON.
func (p *Page) Evaluate(ctx context.Context, js string, args ...any) ([]byte, error) {
	res, err := p.page.Context(ctx).Eval(js, args...)
	if err != nil {
		return nil, err
	}
	return json.Marshal(res.Value)
}

// HTML returns the serialized DOM.
func (p *Page) HTML(ctx context.Context) (string, error) {
	return p.page.Context(ctx).HTML()
}

// SetViewport resizes the emulated viewport.
func (p *Page) SetViewport(ctx context.Context, width, height int) error {
	return p.page.Context(ctx).SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
	})
}

// Screenshot captures a PNG of the viewport, or of the whole page when
// fullPage is set.
func (p *Page) Screenshot(ctx context.Context, fullPage bool) ([]byte, error) {
	return p.page.Context(ctx).Screenshot(fullPage, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
}

// Close closes the tab.
func (p *Page) Close() error {
	if p.router != nil {
		if err := p.router.Stop(); err != nil {
			p.logger.Debug("stop request router", "error", err)
		}
	}
	return p.page.Close()
}

func (p *Page) String() string {
	return fmt.Sprintf("page(%s)", p.page.TargetID)
}

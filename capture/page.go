package capture

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/use-agent/siteclone/models"
	"github.com/use-agent/siteclone/theme"
)

// Page is the browser capability the pipeline drives. scraper.Page
// implements it against a real browser.
type Page interface {
	theme.Page

	// Navigate loads url and waits for network idle. A failure is fatal.
	Navigate(ctx context.Context, url string) error
	// HTML returns the serialized DOM.
	HTML(ctx context.Context) (string, error)
	SetViewport(ctx context.Context, width, height int) error
	Screenshot(ctx context.Context, fullPage bool) ([]byte, error)
	// Screencast streams frames for d, keeping at most keep of them, and
	// reports how many frames arrived.
	Screencast(ctx context.Context, d time.Duration, keep int) ([][]byte, int, error)
	// CaptureResponses hands every network response to handle until the
	// returned stop function is called. stop drains in-flight handlers.
	CaptureResponses(ctx context.Context, handle func(models.CapturedResponse)) (stop func(), err error)
}

// Fetcher downloads a stylesheet by URL from outside the page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

func evalInto(ctx context.Context, p Page, dst any, js string, args ...any) error {
	raw, err := p.Evaluate(ctx, js, args...)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode eval result: %w", err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

package scraper

import (
	"context"
	"fmt"

	"github.com/go-rod/rod/lib/proto"
)

// ClickSelector scrolls the first visible element matching selector into
// view and clicks it. It reports false when no match is visible.
func (p *Page) ClickSelector(ctx context.Context, selector string) (bool, error) {
	pg := p.page.Context(ctx)

	els, err := pg.Elements(selector)
	if err != nil {
		return false, fmt.Errorf("query %q: %w", selector, err)
	}
	for _, el := range els {
		visible, err := el.Visible()
		if err != nil || !visible {
			continue
		}
		if err := el.ScrollIntoView(); err != nil {
			return false, fmt.Errorf("scroll %q into view: %w", selector, err)
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return false, fmt.Errorf("click %q: %w", selector, err)
		}
		return true, nil
	}
	return false, nil
}

// ClickAt moves the mouse to viewport coordinates and clicks there.
func (p *Page) ClickAt(ctx context.Context, x, y float64) error {
	mouse := p.page.Context(ctx).Mouse
	if err := mouse.MoveTo(proto.Point{X: x, Y: y}); err != nil {
		return fmt.Errorf("move mouse: %w", err)
	}
	return mouse.Click(proto.InputMouseButtonLeft, 1)
}

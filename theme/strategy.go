package theme

import (
	"context"
	"log/slog"

	"github.com/use-agent/siteclone/models"
)

// toggleSelectors are tried in order; earlier entries are more specific.
var toggleSelectors = []string{
	`[aria-label*="theme" i]`,
	`[aria-label*="dark" i]`,
	`[aria-label*="light" i]`,
	`[aria-label*="mode" i]`,
	`[data-testid*="theme" i]`,
	`[data-testid*="dark" i]`,
	`[class*="theme-toggle" i]`,
	`[class*="dark-mode" i]`,
	`[class*="light-mode" i]`,
	`[class*="color-scheme" i]`,
	`[id*="theme" i]`,
	`[id*="dark-mode" i]`,
	`button:has(svg[class*="sun" i])`,
	`button:has(svg[class*="moon" i])`,
	`button:has([class*="sun" i])`,
	`button:has([class*="moon" i])`,
	`[class*="IconButton"][class*="theme" i]`,
}

// fallbackSelectors are re-scanned when the located control can no longer
// be addressed.
var fallbackSelectors = []string{
	`[aria-label*="theme" i]`,
	`[aria-label*="dark" i]`,
	`[aria-label*="light" i]`,
	`button[class*="theme"]`,
	`[data-testid*="theme"]`,
}

// toggleWords match the visible label of text toggles.
var toggleWords = []string{"dark", "light", "theme"}

// maxIconSize bounds the width and height of an icon-only toggle.
const maxIconSize = 100

// strategy is one way of locating the theme control. Not finding anything
// is reported as a zero ToggleInfo, not as an error.
type strategy struct {
	name string
	find func(ctx context.Context) (models.ToggleInfo, error)
}

// firstFound runs the strategies in order and returns the first hit. A
// strategy that errors is logged and skipped.
func firstFound(ctx context.Context, logger *slog.Logger, strategies []strategy) (models.ToggleInfo, bool) {
	for _, s := range strategies {
		if ctx.Err() != nil {
			break
		}
		info, err := s.find(ctx)
		if err != nil {
			logger.Debug("toggle strategy failed", "strategy", s.name, "error", err)
			continue
		}
		if info.Found {
			return info, true
		}
	}
	return models.ToggleInfo{}, false
}

func (s *Switcher) strategies() []strategy {
	out := make([]strategy, 0, len(toggleSelectors)+2)
	for _, sel := range toggleSelectors {
		out = append(out, strategy{
			name: sel,
			find: func(ctx context.Context) (models.ToggleInfo, error) {
				return s.evalToggle(ctx, findBySelectorScript, sel)
			},
		})
	}
	out = append(out,
		strategy{
			name: "button-text",
			find: func(ctx context.Context) (models.ToggleInfo, error) {
				return s.evalToggle(ctx, findByTextScript, toggleWords)
			},
		},
		strategy{
			name: "svg-icon-button",
			find: func(ctx context.Context) (models.ToggleInfo, error) {
				return s.evalToggle(ctx, findByIconScript, maxIconSize)
			},
		},
	)
	return out
}

func (s *Switcher) evalToggle(ctx context.Context, script string, arg any) (models.ToggleInfo, error) {
	var info models.ToggleInfo
	err := evalInto(ctx, s.page, &info, script, arg)
	return info, err
}

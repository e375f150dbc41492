package theme

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/use-agent/siteclone/models"
)

// Page is the slice of a browser tab the switcher needs.
type Page interface {
	// Evaluate runs a JavaScript function in the page and returns its
	// JSON-encoded result.
	Evaluate(ctx context.Context, js string, args ...any) ([]byte, error)
	// ClickSelector scrolls the first visible match into view and clicks
	// it. It reports false when nothing visible matched.
	ClickSelector(ctx context.Context, selector string) (bool, error)
	// ClickAt dispatches a raw left click at viewport coordinates.
	ClickAt(ctx context.Context, x, y float64) error
}

// Switch methods recorded in theme_info.json.
const (
	MethodControl = "control"
	MethodScript  = "script"
)

// Switcher detects and flips the page's color scheme.
type Switcher struct {
	page   Page
	logger *slog.Logger

	// ClickSettle is waited after clicking the control.
	ClickSettle time.Duration
	// ScriptSettle is waited after a script toggle.
	ScriptSettle time.Duration
	// ScrollSettle is waited after scrolling before a coordinate click.
	ScrollSettle time.Duration
}

// NewSwitcher returns a Switcher with the default settle delays.
func NewSwitcher(page Page, logger *slog.Logger) *Switcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Switcher{
		page:         page,
		logger:       logger,
		ClickSettle:  time.Second,
		ScriptSettle: 500 * time.Millisecond,
		ScrollSettle: 300 * time.Millisecond,
	}
}

// Detect reads the page signals and classifies the current theme.
func (s *Switcher) Detect(ctx context.Context) (models.ThemeName, error) {
	var sig Signals
	if err := evalInto(ctx, s.page, &sig, signalsScript); err != nil {
		return models.ThemeLight, fmt.Errorf("theme detect: %w", err)
	}
	return Decide(sig), nil
}

// FindToggle locates the theme control. ok is false when no strategy found
// one, which is an ordinary outcome.
func (s *Switcher) FindToggle(ctx context.Context) (models.ToggleInfo, bool) {
	return firstFound(ctx, s.logger, s.strategies())
}

// Click interacts with the control once: the marked element, then the
// fallback selectors, then the control's last known coordinates. It
// returns the interaction used.
func (s *Switcher) Click(ctx context.Context, handle models.ToggleInfo) (string, error) {
	if !handle.Found {
		return "", fmt.Errorf("theme toggle: no control")
	}

	targets := append([]string{"[" + toggleMarker + "]"}, fallbackSelectors...)
	for _, sel := range targets {
		clicked, err := s.page.ClickSelector(ctx, sel)
		if err != nil {
			s.logger.Debug("toggle click failed", "selector", sel, "error", err)
			continue
		}
		if clicked {
			return sel, sleep(ctx, s.ClickSettle)
		}
	}

	r := handle.Rect
	if r.Width <= 0 || r.Height <= 0 {
		return "", fmt.Errorf("theme toggle: control not addressable")
	}
	var scrollY float64
	if err := evalInto(ctx, s.page, &scrollY, scrollForClickScript, r.Y); err != nil {
		return "", fmt.Errorf("theme toggle: scroll: %w", err)
	}
	if err := sleep(ctx, s.ScrollSettle); err != nil {
		return "", err
	}
	x := r.X + r.Width/2
	y := r.Y - scrollY + r.Height/2
	if err := s.page.ClickAt(ctx, x, y); err != nil {
		return "", fmt.Errorf("theme toggle: click at %.0f,%.0f: %w", x, y, err)
	}
	return "coordinates", sleep(ctx, s.ClickSettle)
}

// Toggle clicks the control and reports whether the detected theme changed.
func (s *Switcher) Toggle(ctx context.Context, handle models.ToggleInfo) (bool, error) {
	before, err := s.Detect(ctx)
	if err != nil {
		return false, err
	}
	if _, err := s.Click(ctx, handle); err != nil {
		return false, err
	}
	s.scrollTop(ctx)
	after, err := s.Detect(ctx)
	if err != nil {
		return false, err
	}
	return after != before, nil
}

// ToggleViaScript mutates the DOM directly: it flips a data-theme
// attribute, else swaps a dark/light class on <html>, else adds "dark".
// It reports whether a mutation was applied, not whether the page changed.
func (s *Switcher) ToggleViaScript(ctx context.Context) (bool, error) {
	m, err := s.scriptToggle(ctx)
	return m.Kind != mutationNone, err
}

type mutation struct {
	Kind     string `json:"kind"`
	Previous string `json:"previous"`
}

func (s *Switcher) scriptToggle(ctx context.Context) (mutation, error) {
	var m mutation
	if err := evalInto(ctx, s.page, &m, scriptToggleScript); err != nil {
		return mutation{}, fmt.Errorf("theme script toggle: %w", err)
	}
	if m.Kind != mutationNone {
		if err := sleep(ctx, s.ScriptSettle); err != nil {
			return m, err
		}
	}
	return m, nil
}

// Result describes one attempt to move the page to its other theme.
type Result struct {
	From     models.ThemeName
	To       models.ThemeName
	Switched bool
	Method   string

	handle   models.ToggleInfo
	mutation mutation
}

// Switch flips the page away from its current theme: the control when one
// was found, else (or when the click changed nothing) the script toggle.
// Switched is true only when a different theme is detected afterwards.
func (s *Switcher) Switch(ctx context.Context, from models.ThemeName, handle models.ToggleInfo) (Result, error) {
	res := Result{From: from, To: from, handle: handle}

	if handle.Found {
		changed, err := s.Toggle(ctx, handle)
		switch {
		case err != nil:
			s.logger.Warn("theme control click failed, trying script", "error", err)
		case changed:
			res.To = from.Opposite()
			res.Switched = true
			res.Method = MethodControl
			return res, nil
		default:
			s.logger.Warn("theme unchanged after click, trying script")
		}
	}

	m, err := s.scriptToggle(ctx)
	if err != nil {
		return res, err
	}
	if m.Kind == mutationNone {
		return res, nil
	}
	res.mutation = m
	res.Method = MethodScript
	s.scrollTop(ctx)

	now, err := s.Detect(ctx)
	if err != nil {
		return res, err
	}
	res.To = now
	res.Switched = now != from
	return res, nil
}

// Restore returns the page to the theme it had before Switch, using the
// mechanism that moved it.
func (s *Switcher) Restore(ctx context.Context, res Result) error {
	switch res.Method {
	case MethodControl:
		if _, err := s.Click(ctx, res.handle); err != nil {
			return err
		}
	case MethodScript:
		var ok bool
		err := evalInto(ctx, s.page, &ok, scriptRevertScript, res.mutation.Kind, res.mutation.Previous)
		if err != nil {
			return fmt.Errorf("theme restore: %w", err)
		}
		if err := sleep(ctx, s.ScriptSettle); err != nil {
			return err
		}
	default:
		return nil
	}
	s.scrollTop(ctx)
	return nil
}

func (s *Switcher) scrollTop(ctx context.Context) {
	if _, err := s.page.Evaluate(ctx, scrollTopScript); err != nil {
		s.logger.Debug("scroll to top failed", "error", err)
		return
	}
	_ = sleep(ctx, s.ScriptSettle)
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

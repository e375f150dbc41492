// Package capture sequences a single-page capture run: navigation, lazy
// load triggering, animation and theme capture, responsive screenshots,
// DOM and stylesheet extraction, and the final artifact bundle.
package capture

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/use-agent/siteclone/assets"
	"github.com/use-agent/siteclone/config"
	"github.com/use-agent/siteclone/document"
	"github.com/use-agent/siteclone/models"
	"github.com/use-agent/siteclone/theme"
)

// Breakpoint is a named viewport size.
type Breakpoint struct {
	Name   string
	Width  int
	Height int
}

// Breakpoints are captured in this order; the first is also the viewport
// restored after each resize sequence.
var Breakpoints = []Breakpoint{
	{Name: "full", Width: 1920, Height: 1080},
	{Name: "desktop", Width: 1440, Height: 900},
	{Name: "tablet", Width: 768, Height: 1024},
	{Name: "mobile", Width: 390, Height: 844},
}

// Orchestrator runs the capture pipeline against one page. Stages run
// strictly in sequence; only network response handling runs alongside
// them.
type Orchestrator struct {
	cfg      config.CaptureConfig
	page     Page
	out      *Output
	store    *assets.Store
	switcher *theme.Switcher
	markdown *document.Converter
	fetcher  Fetcher
	logger   *slog.Logger

	// wait is the pause used between browser steps.
	wait func(ctx context.Context, d time.Duration) error
	now  func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithFetcher sets the fallback fetcher for stylesheets the page could
// not read.
func WithFetcher(f Fetcher) Option {
	return func(o *Orchestrator) { o.fetcher = f }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// New creates an Orchestrator writing into outputDir.
func New(page Page, cfg config.CaptureConfig, outputDir string, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:      cfg,
		page:     page,
		out:      NewOutput(outputDir),
		markdown: document.NewConverter(),
		logger:   slog.Default(),
		wait:     sleep,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.store = assets.NewStore(outputDir, o.logger)
	o.switcher = theme.NewSwitcher(page, o.logger)
	return o
}

// run accumulates stage results; it is merged into the report once every
// stage has finished.
type run struct {
	url         string
	videos      []models.VideoElement
	animation   *models.AnimationCapture
	themeInfo   models.ThemeInfo
	themes      []models.ThemeSnapshot
	screenshots []models.Screenshot
	data        models.PageData
	sheets      []models.StylesheetContent
	tree        *models.ComponentNode
}

// Run captures targetURL. Only an invalid target, an unusable output
// directory or a navigation failure returns an error; every later stage
// logs its failure and the run continues with what it has.
func (o *Orchestrator) Run(ctx context.Context, targetURL string) (*models.ExtractionReport, error) {
	if u, err := url.ParseRequestURI(targetURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, models.NewCaptureError(models.ErrCodeInvalidInput, "target must be an http(s) URL", err)
	}
	if err := o.out.Prepare(); err != nil {
		return nil, err
	}
	o.logger.Info("capture started", "url", targetURL, "output", o.out.Root())
	start := time.Now()

	stopNetwork := o.startNetworkCapture(ctx)
	defer stopNetwork()

	if err := o.navigate(ctx, targetURL); err != nil {
		return nil, err
	}

	r := &run{url: targetURL}
	stageTimeout := o.cfg.StageTimeout

	o.stage(ctx, "scroll", stageTimeout, o.scroll)
	o.stage(ctx, "videos", stageTimeout, func(ctx context.Context) (err error) {
		r.videos, err = o.videoElements(ctx)
		return err
	})
	o.stage(ctx, "animations", stageTimeout+maxCaptureWindow, func(ctx context.Context) (err error) {
		r.animation, err = o.captureAnimations(ctx)
		return err
	})
	o.stage(ctx, "themes", 2*stageTimeout, func(ctx context.Context) error {
		r.themeInfo, r.themes = o.captureThemes(ctx)
		return nil
	})
	o.stage(ctx, "breakpoints", stageTimeout, func(ctx context.Context) (err error) {
		r.screenshots, err = o.captureBreakpoints(ctx)
		return err
	})
	o.stage(ctx, "page data", stageTimeout, func(ctx context.Context) (err error) {
		r.data, err = o.extractPageData(ctx)
		return err
	})
	o.stage(ctx, "stylesheets", stageTimeout, func(ctx context.Context) (err error) {
		r.sheets, err = o.extractStylesheets(ctx)
		return err
	})
	o.stage(ctx, "component tree", stageTimeout, func(ctx context.Context) (err error) {
		r.tree, err = o.componentTree(ctx)
		return err
	})

	stopNetwork()

	report := o.assemble(r)
	o.writeArtifacts(report, r)

	o.logger.Info("capture complete",
		"url", targetURL,
		"elapsed", time.Since(start).Round(time.Millisecond),
		"themes", len(r.themes),
		"assets", len(report.NetworkLog),
	)
	return report, nil
}

// startNetworkCapture subscribes the asset store to network responses.
// The returned function is safe to call more than once.
func (o *Orchestrator) startNetworkCapture(ctx context.Context) func() {
	stop, err := o.page.CaptureResponses(ctx, func(resp models.CapturedResponse) {
		o.store.Record(resp)
	})
	if err != nil {
		o.logger.Warn("network capture unavailable, assets will not be saved", "error", err)
		return func() {}
	}
	return sync.OnceFunc(stop)
}

func (o *Orchestrator) navigate(ctx context.Context, targetURL string) error {
	navCtx, cancel := context.WithTimeout(ctx, o.cfg.NavigationTimeout)
	defer cancel()

	o.logger.Info("navigating", "url", targetURL, "timeout", o.cfg.NavigationTimeout)
	if err := o.page.Navigate(navCtx, targetURL); err != nil {
		var ce *models.CaptureError
		if !errors.As(err, &ce) {
			err = models.NewCaptureError(models.ErrCodeNavigation, "navigation to target URL failed", err)
		}
		o.logger.Error("navigation failed", "url", targetURL, "error", err)
		return err
	}
	return o.wait(ctx, o.cfg.Settle)
}

// stage runs fn under its own deadline and logs the outcome. A failing
// stage never stops the pipeline.
func (o *Orchestrator) stage(ctx context.Context, name string, timeout time.Duration, fn func(context.Context) error) {
	if ctx.Err() != nil {
		o.logger.Warn("stage skipped", "stage", name, "error", ctx.Err())
		return
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	sctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	o.logger.Debug("stage started", "stage", name)
	if err := fn(sctx); err != nil {
		o.logger.Warn("stage failed", "stage", name, "error", err, "elapsed", time.Since(start).Round(time.Millisecond))
		return
	}
	o.logger.Info("stage complete", "stage", name, "elapsed", time.Since(start).Round(time.Millisecond))
}

func (o *Orchestrator) scrollTop(ctx context.Context) {
	if _, err := o.page.Evaluate(ctx, scrollTopScript); err != nil {
		o.logger.Debug("scroll to top failed", "error", err)
	}
	_ = o.wait(ctx, 500*time.Millisecond)
}

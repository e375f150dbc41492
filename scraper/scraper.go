package scraper

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/use-agent/siteclone/config"
	"github.com/use-agent/siteclone/models"
)

// Browser owns the browser used for one capture run: either a process it
// launched or a connection to a remote CDP endpoint.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher // nil when connected remotely
	cfg      config.BrowserConfig
	logger   *slog.Logger
}

// Launch starts a local Chromium, or connects to cfg.RemoteURL when set.
func Launch(cfg config.BrowserConfig, logger *slog.Logger) (*Browser, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.RemoteURL != "" {
		browser := rod.New().ControlURL(cfg.RemoteURL)
		if err := browser.Connect(); err != nil {
			return nil, models.NewCaptureError(
				models.ErrCodeBrowserCrash,
				"failed to connect to CDP URL",
				err,
			)
		}
		logger.Info("connected to remote browser", "controlURL", cfg.RemoteURL)
		return &Browser{browser: browser, cfg: cfg, logger: logger}, nil
	}

	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}
	if cfg.Proxy != "" {
		l = l.Proxy(cfg.Proxy)
	}

	// ── Stealth flags ────────────────────────────────────────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "TranslateUI")
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("autoplay-policy"), "no-user-gesture-required")
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewCaptureError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	logger.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, models.NewCaptureError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}

	return &Browser{browser: browser, launcher: l, cfg: cfg, logger: logger}, nil
}

// NewPage opens a tab sized to the configured viewport with stealth and
// user agent overrides installed before any navigation.
func (b *Browser) NewPage(opts PageOptions) (*Page, error) {
	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, models.NewCaptureError(
			models.ErrCodeBrowserCrash,
			"failed to create page",
			err,
		)
	}

	if b.cfg.Stealth {
		if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
			b.logger.Warn("stealth injection failed, proceeding without stealth", "error", err)
		}
	}
	if b.cfg.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: b.cfg.UserAgent}); err != nil {
			b.logger.Warn("user agent override failed", "error", err)
		}
	}

	p := &Page{page: page, opts: opts, logger: b.logger}
	if b.cfg.BlockTrackers {
		p.router = blockTrackers(page)
	}
	if err := p.SetViewport(context.Background(), b.cfg.Width, b.cfg.Height); err != nil {
		_ = page.Close()
		return nil, models.NewCaptureError(models.ErrCodeBrowserCrash, "failed to set viewport", err)
	}
	return p, nil
}

// Close shuts the browser down. A remote browser is only disconnected.
func (b *Browser) Close() error {
	if b.launcher == nil {
		b.logger.Info("leaving remote browser running")
		return nil
	}
	err := b.browser.Close()
	b.launcher.Cleanup()
	b.logger.Info("browser closed")
	return err
}

// categorizeError wraps raw errors into typed CaptureErrors.
func categorizeError(err error, msg string) *models.CaptureError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewCaptureError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewCaptureError(models.ErrCodeTimeout, "capture canceled", err)
	default:
		return models.NewCaptureError(models.ErrCodeNavigation, msg, err)
	}
}

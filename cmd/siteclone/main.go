package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/use-agent/siteclone/capture"
	"github.com/use-agent/siteclone/config"
	"github.com/use-agent/siteclone/models"
	"github.com/use-agent/siteclone/scraper"
)

func main() {
	app := &cli.App{
		Name:      "siteclone",
		Usage:     "capture a rendered website as a reconstruction bundle",
		ArgsUsage: "[url] [output-dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file", EnvVars: []string{"SITECLONE_CONFIG"}},
			&cli.StringFlag{Name: "env-file", Usage: "dotenv file with SITECLONE_* settings", Value: ".env"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "log-format", Usage: "text or json"},
			&cli.BoolFlag{Name: "headless", Usage: "run the browser headless", Value: true},
			&cli.BoolFlag{Name: "stealth", Usage: "inject the anti-detection script", Value: true},
			&cli.BoolFlag{Name: "block-trackers", Usage: "fail requests to ad and analytics hosts"},
			&cli.StringFlag{Name: "remote", Usage: "connect to a running browser at this CDP URL"},
			&cli.DurationFlag{Name: "animation-window", Usage: "minimum animation capture window"},
			&cli.BoolFlag{Name: "hero-screencast", Usage: "record animations with a CDP screencast"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("siteclone failed", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	// ── 2. Initialise structured logging ────────────────────────────
	logger := initLogger(cfg.Log)
	logger.Info("siteclone starting",
		"url", cfg.URL,
		"output", cfg.OutputDir,
		"headless", cfg.Browser.Headless,
		"heroScreencast", cfg.Capture.HeroScreencast,
	)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 3. Launch the browser ───────────────────────────────────────
	browser, err := scraper.Launch(cfg.Browser, logger)
	if err != nil {
		return err
	}
	defer browser.Close()

	page, err := browser.NewPage(scraper.PageOptions{IdleWindow: cfg.Capture.IdleWindow})
	if err != nil {
		return err
	}
	defer page.Close()

	// ── 4. Capture ──────────────────────────────────────────────────
	opts := []capture.Option{capture.WithLogger(logger)}
	if cfg.Fetch.Enabled {
		fetcher := scraper.NewStyleFetcher(cfg.Fetch, cfg.Browser.Proxy, cfg.Browser.UserAgent)
		defer fetcher.Close()
		opts = append(opts, capture.WithFetcher(fetcher))
	}

	report, err := capture.New(page, cfg.Capture, cfg.OutputDir, opts...).Run(ctx, cfg.URL)
	if err != nil {
		var ce *models.CaptureError
		if errors.As(err, &ce) && ce.IsFatal() {
			return fmt.Errorf("capture aborted: %w", err)
		}
		return err
	}

	logger.Info("clone complete",
		"output", cfg.OutputDir,
		"title", report.Title,
		"themes", len(report.Themes.ThemesCaptured),
		"fonts", len(report.Assets.Fonts),
		"images", len(report.Assets.Images),
	)
	return nil
}

// loadConfig layers defaults, the config file, the environment (including
// the dotenv file), flags and positional arguments, in increasing
// precedence.
func loadConfig(c *cli.Context) (*config.Config, error) {
	// A missing dotenv file is normal; variables already set win.
	if err := godotenv.Load(c.String("env-file")); err != nil && c.IsSet("env-file") {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	var cfg *config.Config
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.LoadFile(path); err != nil {
			return nil, err
		}
	} else {
		cfg = config.Load()
	}

	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}
	if c.IsSet("headless") {
		cfg.Browser.Headless = c.Bool("headless")
	}
	if c.IsSet("stealth") {
		cfg.Browser.Stealth = c.Bool("stealth")
	}
	if c.IsSet("block-trackers") {
		cfg.Browser.BlockTrackers = c.Bool("block-trackers")
	}
	if c.IsSet("remote") {
		cfg.Browser.RemoteURL = c.String("remote")
	}
	if c.IsSet("animation-window") {
		cfg.Capture.AnimationWindow = c.Duration("animation-window")
	}
	if c.IsSet("hero-screencast") {
		cfg.Capture.HeroScreencast = c.Bool("hero-screencast")
	}

	if c.NArg() > 0 {
		cfg.URL = c.Args().Get(0)
	}
	if c.NArg() > 1 {
		cfg.OutputDir = c.Args().Get(1)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

package capture

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/use-agent/siteclone/config"
	"github.com/use-agent/siteclone/models"
	"github.com/use-agent/siteclone/scraper"
)

const e2eHTML = `<!doctype html>
<html data-theme="dark">
<head>
<title>Spinner</title>
<meta name="description" content="A dark page with a spinner">
<link rel="stylesheet" href="/site.css">
<style>@keyframes spin { to { transform: rotate(360deg); } } .spinner { animation: spin 1s linear infinite; }</style>
</head>
<body style="background: rgb(10, 10, 10); color: rgb(240, 240, 240)">
<header><nav><a href="/about">About</a></nav></header>
<main><section class="hero"><h1>Hello</h1><div class="spinner">*</div></section></main>
</body>
</html>`

func TestRun_RealBrowser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	if _, ok := launcher.LookPath(); !ok {
		t.Skip("no local Chromium found")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, e2eHTML)
	})
	mux.HandleFunc("/site.css", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css")
		io.WriteString(w, "h1 { font-size: 48px; border-radius: 8px; }")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Default()
	cfg.Browser.NoSandbox = true
	cfg.Capture.Settle = 200 * time.Millisecond
	cfg.Capture.ScrollPasses = 1
	cfg.Capture.PassPause = 0
	cfg.Capture.PostScrollSettle = 0
	cfg.Capture.AnimationWindow = 0
	cfg.Capture.FrameInterval = 5 * time.Second
	cfg.Capture.BreakpointSettle = 50 * time.Millisecond
	cfg.Capture.ThemeSettle = 50 * time.Millisecond

	browser, err := scraper.Launch(cfg.Browser, logger)
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	defer browser.Close()

	page, err := browser.NewPage(scraper.PageOptions{IdleWindow: cfg.Capture.IdleWindow})
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	defer page.Close()

	dir := t.TempDir()
	o := New(page, cfg.Capture, dir, WithLogger(logger))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	report, err := o.Run(ctx, srv.URL)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.Title != "Spinner" {
		t.Errorf("Title = %q", report.Title)
	}
	if report.Themes.InitialTheme != models.ThemeDark {
		t.Errorf("InitialTheme = %q, want dark", report.Themes.InitialTheme)
	}
	var names []string
	for _, kf := range report.Animations.Keyframes {
		names = append(names, kf.Name)
	}
	if len(names) == 0 || names[0] != "spin" {
		t.Errorf("keyframes = %v, want spin", names)
	}
	if len(report.Assets.Stylesheets) != 1 {
		t.Errorf("saved stylesheets = %d, want 1", len(report.Assets.Stylesheets))
	}
	for _, rel := range []string{"themes/dark/screenshot_full.png", "themes/dark/design_tokens.json", "animations/frame_000s.png"} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}

	shots, _ := filepath.Glob(filepath.Join(dir, "screenshot_*.png"))
	if len(shots) != 4 {
		t.Errorf("breakpoint screenshots = %d, want 4", len(shots))
	}
	html, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil || !strings.Contains(string(html), "<h1>Hello</h1>") {
		t.Errorf("index.html does not hold the rendered markup: %v", err)
	}
}

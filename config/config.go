package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default target and output used when none are given on the command line.
const (
	DefaultURL       = "https://www.aura.build/share/lumina-video"
	DefaultOutputDir = "cloned_site"
)

// Config holds all application configuration.
type Config struct {
	URL       string        `yaml:"url"`
	OutputDir string        `yaml:"output_dir"`
	Browser   BrowserConfig `yaml:"browser"`
	Capture   CaptureConfig `yaml:"capture"`
	Fetch     FetchConfig   `yaml:"fetch"`
	Log       LogConfig     `yaml:"log"`
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool `yaml:"headless"` // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool `yaml:"no_sandbox"` // default: false

	// Bin overrides the Chromium binary path.
	Bin string `yaml:"bin"`

	// Proxy is passed to the browser as --proxy-server.
	Proxy string `yaml:"proxy"`

	// RemoteURL connects to an already running browser's CDP endpoint
	// instead of launching one.
	RemoteURL string `yaml:"remote_url"`

	// UserAgent overrides the browser user agent when set.
	UserAgent string `yaml:"user_agent"`

	// Stealth injects the anti-detection script into every page.
	Stealth bool `yaml:"stealth"` // default: true

	// BlockTrackers fails requests to known ad and analytics hosts so they
	// stay out of the asset bundle and the network log.
	BlockTrackers bool `yaml:"block_trackers"` // default: false

	// Width and Height are the initial viewport.
	Width  int `yaml:"width"`  // default: 1920
	Height int `yaml:"height"` // default: 1080
}

// CaptureConfig controls the capture pipeline timing.
type CaptureConfig struct {
	// NavigationTimeout bounds navigation plus the network-idle wait.
	NavigationTimeout time.Duration `yaml:"navigation_timeout"` // default: 60s

	// IdleWindow is how long the network must be quiet to count as idle.
	IdleWindow time.Duration `yaml:"idle_window"` // default: 500ms

	// Settle is waited after navigation.
	Settle time.Duration `yaml:"settle"` // default: 3s

	// StageTimeout bounds each single browser call after navigation.
	StageTimeout time.Duration `yaml:"stage_timeout"` // default: 60s

	ScrollPasses     int           `yaml:"scroll_passes"`      // default: 3
	ScrollStep       int           `yaml:"scroll_step"`        // default: 300 (px)
	ScrollPause      time.Duration `yaml:"scroll_pause"`       // default: 150ms
	PassPause        time.Duration `yaml:"pass_pause"`         // default: 1s
	PostScrollSettle time.Duration `yaml:"post_scroll_settle"` // default: 2s

	// BreakpointSettle is waited after each viewport change.
	BreakpointSettle time.Duration `yaml:"breakpoint_settle"` // default: 500ms

	// ThemeSettle is waited after each viewport change inside a theme capture.
	ThemeSettle time.Duration `yaml:"theme_settle"` // default: 300ms

	// AnimationWindow is the minimum frame capture window before clamping.
	AnimationWindow time.Duration `yaml:"animation_window"` // default: 25s

	// FrameInterval is the gap between interval screenshots.
	FrameInterval time.Duration `yaml:"frame_interval"` // default: 2s

	// HeroScreencast records the hero section with a CDP screencast
	// instead of interval screenshots.
	HeroScreencast bool `yaml:"hero_screencast"` // default: false

	// ComponentDepth bounds the component tree.
	ComponentDepth int `yaml:"component_depth"` // default: 5
}

// FetchConfig controls the Go-side refetch of stylesheets the page could
// not read.
type FetchConfig struct {
	Enabled           bool          `yaml:"enabled"`             // default: true
	RequestsPerSecond float64       `yaml:"requests_per_second"` // default: 2
	Burst             int           `yaml:"burst"`               // default: 4
	Timeout           time.Duration `yaml:"timeout"`             // default: 15s
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // default: "info"
	Format string `yaml:"format"` // "json" or "text"; default: "text"
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		URL:       DefaultURL,
		OutputDir: DefaultOutputDir,
		Browser: BrowserConfig{
			Headless: true,
			Stealth:  true,
			Width:    1920,
			Height:   1080,
		},
		Capture: CaptureConfig{
			NavigationTimeout: 60 * time.Second,
			IdleWindow:        500 * time.Millisecond,
			Settle:            3 * time.Second,
			StageTimeout:      60 * time.Second,
			ScrollPasses:      3,
			ScrollStep:        300,
			ScrollPause:       150 * time.Millisecond,
			PassPause:         time.Second,
			PostScrollSettle:  2 * time.Second,
			BreakpointSettle:  500 * time.Millisecond,
			ThemeSettle:       300 * time.Millisecond,
			AnimationWindow:   25 * time.Second,
			FrameInterval:     2 * time.Second,
			ComponentDepth:    5,
		},
		Fetch: FetchConfig{
			Enabled:           true,
			RequestsPerSecond: 2,
			Burst:             4,
			Timeout:           15 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

// LoadFile reads a YAML file over the defaults, then applies environment
// overrides. Keys missing from the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// Validate rejects values the pipeline cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.URL == "":
		return fmt.Errorf("config: url is required")
	case c.OutputDir == "":
		return fmt.Errorf("config: output_dir is required")
	case c.Capture.NavigationTimeout <= 0:
		return fmt.Errorf("config: navigation_timeout must be positive")
	case c.Capture.ScrollStep <= 0:
		return fmt.Errorf("config: scroll_step must be positive")
	case c.Capture.FrameInterval < time.Millisecond:
		return fmt.Errorf("config: frame_interval must be at least 1ms")
	case c.Capture.ComponentDepth < 0:
		return fmt.Errorf("config: component_depth must not be negative")
	case c.Browser.Width <= 0 || c.Browser.Height <= 0:
		return fmt.Errorf("config: viewport must be positive")
	}
	return nil
}

func (c *Config) applyEnv() {
	c.URL = envOr("SITECLONE_URL", c.URL)
	c.OutputDir = envOr("SITECLONE_OUTPUT_DIR", c.OutputDir)

	b := &c.Browser
	b.Headless = envBoolOr("SITECLONE_HEADLESS", b.Headless)
	b.NoSandbox = envBoolOr("SITECLONE_NO_SANDBOX", b.NoSandbox)
	b.Bin = envOr("SITECLONE_BROWSER_BIN", b.Bin)
	b.Proxy = envOr("SITECLONE_PROXY", b.Proxy)
	b.RemoteURL = envOr("SITECLONE_REMOTE_URL", b.RemoteURL)
	b.UserAgent = envOr("SITECLONE_USER_AGENT", b.UserAgent)
	b.Stealth = envBoolOr("SITECLONE_STEALTH", b.Stealth)
	b.BlockTrackers = envBoolOr("SITECLONE_BLOCK_TRACKERS", b.BlockTrackers)
	b.Width = envIntOr("SITECLONE_VIEWPORT_WIDTH", b.Width)
	b.Height = envIntOr("SITECLONE_VIEWPORT_HEIGHT", b.Height)

	cp := &c.Capture
	cp.NavigationTimeout = envDurationOr("SITECLONE_NAV_TIMEOUT", cp.NavigationTimeout)
	cp.IdleWindow = envDurationOr("SITECLONE_IDLE_WINDOW", cp.IdleWindow)
	cp.Settle = envDurationOr("SITECLONE_SETTLE", cp.Settle)
	cp.StageTimeout = envDurationOr("SITECLONE_STAGE_TIMEOUT", cp.StageTimeout)
	cp.ScrollPasses = envIntOr("SITECLONE_SCROLL_PASSES", cp.ScrollPasses)
	cp.ScrollStep = envIntOr("SITECLONE_SCROLL_STEP", cp.ScrollStep)
	cp.ScrollPause = envDurationOr("SITECLONE_SCROLL_PAUSE", cp.ScrollPause)
	cp.PassPause = envDurationOr("SITECLONE_PASS_PAUSE", cp.PassPause)
	cp.PostScrollSettle = envDurationOr("SITECLONE_POST_SCROLL_SETTLE", cp.PostScrollSettle)
	cp.BreakpointSettle = envDurationOr("SITECLONE_BREAKPOINT_SETTLE", cp.BreakpointSettle)
	cp.ThemeSettle = envDurationOr("SITECLONE_THEME_SETTLE", cp.ThemeSettle)
	cp.AnimationWindow = envDurationOr("SITECLONE_ANIMATION_WINDOW", cp.AnimationWindow)
	cp.FrameInterval = envDurationOr("SITECLONE_FRAME_INTERVAL", cp.FrameInterval)
	cp.HeroScreencast = envBoolOr("SITECLONE_HERO_SCREENCAST", cp.HeroScreencast)
	cp.ComponentDepth = envIntOr("SITECLONE_COMPONENT_DEPTH", cp.ComponentDepth)

	f := &c.Fetch
	f.Enabled = envBoolOr("SITECLONE_REFETCH", f.Enabled)
	f.RequestsPerSecond = envFloatOr("SITECLONE_REFETCH_RPS", f.RequestsPerSecond)
	f.Burst = envIntOr("SITECLONE_REFETCH_BURST", f.Burst)
	f.Timeout = envDurationOr("SITECLONE_REFETCH_TIMEOUT", f.Timeout)

	c.Log.Level = envOr("SITECLONE_LOG_LEVEL", c.Log.Level)
	c.Log.Format = envOr("SITECLONE_LOG_FORMAT", c.Log.Format)
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return fallback
}

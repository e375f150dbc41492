package assets

import (
	"regexp"
	"strings"
	"testing"

	"github.com/use-agent/siteclone/models"
)

func TestSafeFilename(t *testing.T) {
	const u = "https://cdn.example.com/fonts/Inter-Regular.woff2?v=1"
	hash := URLHash(u)

	tests := []struct {
		name     string
		url      string
		category models.Category
		want     string
	}{
		{"keeps extension", u, models.CategoryFont, "Inter-Regular_" + hash + ".woff2"},
		{"default font extension", "https://cdn.example.com/fonts/inter", models.CategoryFont, "inter_" + URLHash("https://cdn.example.com/fonts/inter") + ".woff2"},
		{"default css extension", "https://example.com/styles", models.CategoryStylesheet, "styles_" + URLHash("https://example.com/styles") + ".css"},
		{"default js extension", "https://example.com/bundle", models.CategoryScript, "bundle_" + URLHash("https://example.com/bundle") + ".js"},
		{"default image extension", "https://example.com/img/avatar", models.CategoryImage, "avatar_" + URLHash("https://example.com/img/avatar") + ".png"},
		{"default video extension", "https://example.com/v/clip", models.CategoryVideo, "clip_" + URLHash("https://example.com/v/clip") + ".mp4"},
		{"empty path becomes index", "https://example.com/", models.CategoryImage, "index_" + URLHash("https://example.com/") + ".png"},
		{"unsafe characters replaced", "https://example.com/a%20b+c.png", models.CategoryImage, "a_b_c_" + URLHash("https://example.com/a%20b+c.png") + ".png"},
		{"rive gets riv suffix", "https://example.com/blob/hero.bin", models.CategoryRive, "hero_" + URLHash("https://example.com/blob/hero.bin") + ".bin.riv"},
		{"dotfile has no extension", "https://example.com/.htaccess", models.CategoryScript, ".htaccess_" + URLHash("https://example.com/.htaccess")},
		{"rive keeps riv", "https://example.com/anim/hero.riv", models.CategoryRive, "hero_" + URLHash("https://example.com/anim/hero.riv") + ".riv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeFilename(tt.url, tt.category); got != tt.want {
				t.Errorf("SafeFilename(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestSafeFilename_Stable(t *testing.T) {
	const u = "https://example.com/assets/logo.png"
	a := SafeFilename(u, models.CategoryImage)
	b := SafeFilename(u, models.CategoryImage)
	if a != b {
		t.Errorf("same URL produced %q and %q", a, b)
	}
}

func TestSafeFilename_SameBasenameDifferentURL(t *testing.T) {
	a := SafeFilename("https://a.example.com/logo.png", models.CategoryImage)
	b := SafeFilename("https://b.example.com/logo.png", models.CategoryImage)
	if a == b {
		t.Errorf("different URLs collided on %q", a)
	}
	if !strings.HasPrefix(a, "logo_") || !strings.HasPrefix(b, "logo_") {
		t.Errorf("basename not preserved: %q, %q", a, b)
	}
}

func TestSafeFilename_FilesystemSafe(t *testing.T) {
	safe := regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)
	urls := []string{
		"https://example.com/ümlaut.png",
		"https://example.com/a:b*c?.css",
		"https://example.com/path/with space.js",
		"https://example.com/x<y>z|w.woff",
	}
	for _, u := range urls {
		name := SafeFilename(u, Classify(u, "", nil))
		if !safe.MatchString(name) {
			t.Errorf("SafeFilename(%q) = %q contains unsafe characters", u, name)
		}
	}
}

func TestURLHash(t *testing.T) {
	// md5("https://example.com/") = 182ccedb33a9e03fbf1079b209da1a31
	if got := URLHash("https://example.com/"); got != "182ccedb" {
		t.Errorf("URLHash = %q, want %q", got, "182ccedb")
	}
}

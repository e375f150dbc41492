package theme

import (
	"testing"

	"github.com/use-agent/siteclone/models"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name string
		sig  Signals
		want models.ThemeName
	}{
		{
			name: "data attribute outranks everything",
			sig: Signals{
				DataTheme:      "Dark-Mode",
				Classes:        []string{"light"},
				ColorScheme:    "light",
				BodyBackground: "rgb(255, 255, 255)",
			},
			want: models.ThemeDark,
		},
		{
			name: "data attribute without dark is light",
			sig:  Signals{DataTheme: "solarized", Classes: []string{"dark"}},
			want: models.ThemeLight,
		},
		{
			name: "dark class token",
			sig:  Signals{Classes: []string{"antialiased", "dark"}, ColorScheme: "light"},
			want: models.ThemeDark,
		},
		{
			name: "light class token",
			sig:  Signals{Classes: []string{"light"}, BodyBackground: "rgb(0, 0, 0)"},
			want: models.ThemeLight,
		},
		{
			name: "class substring is not a token",
			sig:  Signals{Classes: []string{"darken-on-hover"}, BodyBackground: "rgb(250, 250, 250)"},
			want: models.ThemeLight,
		},
		{
			name: "dark wins over light when both tokens present",
			sig:  Signals{Classes: []string{"light", "dark"}},
			want: models.ThemeDark,
		},
		{
			name: "color-scheme hint",
			sig:  Signals{ColorScheme: "dark", BodyBackground: "rgb(255, 255, 255)"},
			want: models.ThemeDark,
		},
		{
			name: "ambiguous color-scheme falls through",
			sig:  Signals{ColorScheme: "light dark", BodyBackground: "rgb(10, 10, 10)"},
			want: models.ThemeDark,
		},
		{
			name: "dark background",
			sig:  Signals{BodyBackground: "rgb(17, 24, 39)"},
			want: models.ThemeDark,
		},
		{
			name: "light background",
			sig:  Signals{BodyBackground: "rgba(249, 250, 251, 1)"},
			want: models.ThemeLight,
		},
		{
			name: "transparent background defaults light",
			sig:  Signals{BodyBackground: "rgba(0, 0, 0, 0)"},
			want: models.ThemeLight,
		},
		{
			name: "nothing usable defaults light",
			sig:  Signals{},
			want: models.ThemeLight,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.sig); got != tt.want {
				t.Errorf("Decide() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBrightness(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"rgb(255, 255, 255)", 255, true},
		{"rgb(0, 0, 0)", 0, true},
		{"rgb(100, 100, 100)", 100, true},
		{"rgba(255, 0, 0, 0.5)", 76.245, true},
		{"rgb(0 128 0 / 50%)", 75.136, true},
		{"rgba(0, 0, 0, 0)", 0, false},
		{"#ffffff", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := Brightness(tt.in)
		if ok != tt.wantOK {
			t.Errorf("Brightness(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && (got-tt.want > 0.001 || tt.want-got > 0.001) {
			t.Errorf("Brightness(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

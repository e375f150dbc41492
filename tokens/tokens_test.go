package tokens

import (
	"fmt"
	"strings"
	"testing"

	"github.com/use-agent/siteclone/models"
)

func TestPalette_BucketsByPrefix(t *testing.T) {
	p := Palette([]string{
		"#ffffff", "rgb(0, 0, 0)", "rgba(0, 0, 0, 0.5)", "hsl(210, 40%, 50%)",
		"hsla(210, 40%, 50%, 0.2)", "#ffffff", "color(srgb 1 0 0)",
	})

	if got, want := len(p.All), 6; got != want {
		t.Errorf("All = %d, want %d (%v)", got, want, p.All)
	}
	if len(p.Hex) != 1 || p.Hex[0] != "#ffffff" {
		t.Errorf("Hex = %v", p.Hex)
	}
	if len(p.RGB) != 1 || len(p.RGBA) != 1 {
		t.Errorf("RGB = %v, RGBA = %v", p.RGB, p.RGBA)
	}
	if len(p.HSL) != 2 {
		t.Errorf("HSL = %v, want 2 entries", p.HSL)
	}
}

func TestDedupeTypography_CollapsesSameKey(t *testing.T) {
	samples := []models.TypographySample{
		{Tag: "P", FontFamily: "Inter", FontSize: "16px", FontWeight: "400", Text: "first"},
		{Tag: "P", FontFamily: "Inter", FontSize: "16px", FontWeight: "400", Text: "second"},
		{Tag: "P", FontFamily: "Inter", FontSize: "16px", FontWeight: "700", Text: "bold"},
		{Tag: "H1", FontFamily: "Inter", FontSize: "16px", FontWeight: "400", Text: "heading"},
	}
	got := DedupeTypography(samples)
	if len(got) != 3 {
		t.Errorf("DedupeTypography returned %d samples, want 3", len(got))
	}
}

func TestBuild_CapsListsAtTen(t *testing.T) {
	var els []models.StyleSample
	for i := 0; i < 50; i++ {
		els = append(els, models.StyleSample{
			Tag:             "DIV",
			BoxShadow:       fmt.Sprintf("0px %dpx 4px rgba(0, 0, 0, 0.1)", i),
			BackgroundImage: fmt.Sprintf("linear-gradient(%ddeg, red, blue)", i),
			BorderRadius:    fmt.Sprintf("%dpx", i+1),
		})
	}
	set := Build(models.RawStyles{Elements: els})

	if len(set.Shadows) != MaxCapped {
		t.Errorf("shadows = %d, want %d", len(set.Shadows), MaxCapped)
	}
	if len(set.Gradients) != MaxCapped {
		t.Errorf("gradients = %d, want %d", len(set.Gradients), MaxCapped)
	}
	if len(set.BorderRadius) != MaxCapped {
		t.Errorf("radii = %d, want %d", len(set.BorderRadius), MaxCapped)
	}
	// First-seen order is kept.
	if set.Shadows[0] != "0px 0px 4px rgba(0, 0, 0, 0.1)" {
		t.Errorf("first shadow = %q", set.Shadows[0])
	}
}

func TestBuild_FiltersDefaults(t *testing.T) {
	set := Build(models.RawStyles{Elements: []models.StyleSample{
		{Tag: "DIV", BoxShadow: "none", BorderRadius: "0px", BackgroundImage: "none",
			BackgroundColor: "rgba(0, 0, 0, 0)", Color: "rgb(17, 17, 17)", BorderColor: "transparent"},
		{Tag: "DIV", BackgroundImage: `url("hero.png")`, BackgroundColor: "rgb(255, 255, 255)", Color: "rgb(17, 17, 17)"},
	}})

	if len(set.Shadows) != 0 || len(set.BorderRadius) != 0 || len(set.Gradients) != 0 {
		t.Errorf("expected no shadows/radii/gradients, got %v %v %v", set.Shadows, set.BorderRadius, set.Gradients)
	}
	if len(set.Colors.Backgrounds) != 1 || set.Colors.Backgrounds[0] != "rgb(255, 255, 255)" {
		t.Errorf("backgrounds = %v", set.Colors.Backgrounds)
	}
	if len(set.Colors.Texts) != 1 {
		t.Errorf("texts = %v", set.Colors.Texts)
	}
	if len(set.Colors.Borders) != 0 {
		t.Errorf("borders = %v", set.Colors.Borders)
	}
	if len(set.Colors.All) != 2 {
		t.Errorf("all = %v", set.Colors.All)
	}
	if set.CSSVariables == nil {
		t.Error("CSSVariables should be non-nil")
	}
}

func TestBuild_Typography(t *testing.T) {
	long := strings.Repeat("é", 80)
	var els []models.StyleSample
	els = append(els, models.StyleSample{Tag: "DIV", FontFamily: "Inter", FontSize: "14px", FontWeight: "400"})
	els = append(els, models.StyleSample{Tag: "H1", FontFamily: "Inter", FontSize: "48px", FontWeight: "700", Text: long})
	for i := 0; i < 200; i++ {
		els = append(els, models.StyleSample{Tag: "P", FontFamily: "Inter", FontSize: fmt.Sprintf("%dpx", i), FontWeight: "400"})
	}

	set := Build(models.RawStyles{Elements: els})

	if len(set.Typography) != MaxTypography {
		t.Fatalf("typography = %d, want %d", len(set.Typography), MaxTypography)
	}
	if set.Typography[0].Tag != "H1" {
		t.Errorf("first sample tag = %q, want H1 (DIV is not sampled)", set.Typography[0].Tag)
	}
	if n := len([]rune(set.Typography[0].Text)); n != 50 {
		t.Errorf("text truncated to %d runes, want 50", n)
	}
	if len(set.Fonts) != 1 || set.Fonts[0] != "Inter" {
		t.Errorf("fonts = %v", set.Fonts)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	raw := models.RawStyles{Elements: []models.StyleSample{
		{Tag: "DIV", BackgroundColor: "rgb(1, 2, 3)", BoxShadow: "a"},
		{Tag: "DIV", BackgroundColor: "rgb(4, 5, 6)", BoxShadow: "b"},
		{Tag: "DIV", BackgroundColor: "rgb(1, 2, 3)", BoxShadow: "c"},
	}}
	a := TailwindConfig(Build(raw), "https://example.com")
	b := TailwindConfig(Build(raw), "https://example.com")
	if a != b {
		t.Error("tailwind config differs between identical inputs")
	}
}

func TestTailwindConfig(t *testing.T) {
	set := models.DesignTokenSet{
		Colors: models.ColorPalette{
			Backgrounds: []string{"rgb(255, 255, 255)", "rgb(0, 0, 0)"},
			Texts:       []string{"rgb(17, 17, 17)"},
		},
		Fonts:        []string{`"Inter", sans-serif`, `'Mono', monospace`},
		Typography:   []models.TypographySample{{FontSize: "16px"}, {FontSize: "16px"}, {FontSize: "32px"}},
		BorderRadius: []string{"4px"},
		Shadows:      []string{"0 1px 2px rgba(0,0,0,.1)"},
	}

	out := TailwindConfig(set, "https://example.com")

	for _, want := range []string{
		"// tailwind.config.js - Generated from https://example.com",
		"'bg-0': 'rgb(255, 255, 255)',",
		"'bg-1': 'rgb(0, 0, 0)',",
		"'text-0': 'rgb(17, 17, 17)',",
		`'font-0': ['"Inter", sans-serif', 'sans-serif'],`,
		`'font-1': ['\'Mono\', monospace', 'sans-serif'],`,
		"'size-0': '16px',",
		"'size-1': '32px',",
		"'radius-0': '4px',",
		"'shadow-0': '0 1px 2px rgba(0,0,0,.1)',",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("config missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "'size-2'") {
		t.Error("duplicate font sizes were not collapsed")
	}
}

func TestTailwindConfig_FallsBackToNotationBuckets(t *testing.T) {
	set := models.DesignTokenSet{Colors: models.ColorPalette{
		RGB: []string{"rgb(1, 1, 1)"},
		Hex: []string{"#abcdef"},
	}}
	out := TailwindConfig(set, "u")
	if !strings.Contains(out, "'bg-0': 'rgb(1, 1, 1)',") || !strings.Contains(out, "'text-0': '#abcdef',") {
		t.Errorf("fallback colors missing:\n%s", out)
	}
}

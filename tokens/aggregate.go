// Package tokens reduces per-element computed style samples to a design
// token set and renders it as a Tailwind theme extension.
package tokens

import (
	"strings"
	"unicode/utf8"

	"github.com/use-agent/siteclone/models"
)

const (
	// MaxTypography caps the typography samples considered before dedupe.
	MaxTypography = 100

	// MaxCapped is the hard cap for shadows, gradients and border radii.
	MaxCapped = 10

	// maxTextRunes bounds the visible-text snippet kept per typography sample.
	maxTextRunes = 50
)

// typographyTags is the allow-list of elements sampled for typography.
var typographyTags = map[string]struct{}{
	"H1": {}, "H2": {}, "H3": {}, "H4": {}, "H5": {}, "H6": {},
	"P": {}, "SPAN": {}, "A": {}, "LI": {}, "BUTTON": {},
}

// Build reduces raw style samples to a DesignTokenSet. Every collection is
// deduplicated in first-seen order, so the same input always yields the
// same output.
func Build(raw models.RawStyles) models.DesignTokenSet {
	set := models.DesignTokenSet{
		CSSVariables: raw.CSSVariables,
		Typography:   DedupeTypography(typographySamples(raw.Elements)),
	}
	if set.CSSVariables == nil {
		set.CSSVariables = map[string]string{}
	}

	var bgs, texts, borders, all []string
	fonts := newOrderedSet(0)
	shadows := newOrderedSet(MaxCapped)
	gradients := newOrderedSet(MaxCapped)
	radii := newOrderedSet(MaxCapped)

	for _, el := range raw.Elements {
		bg := normalizeColor(el.BackgroundColor)
		fg := normalizeColor(el.Color)
		border := normalizeColor(el.BorderColor)
		outline := normalizeColor(el.OutlineColor)

		bgs = appendNonEmpty(bgs, bg)
		texts = appendNonEmpty(texts, fg)
		borders = appendNonEmpty(borders, border)
		all = appendNonEmpty(all, bg, fg, border, outline)

		if f := strings.TrimSpace(el.FontFamily); f != "" {
			fonts.add(f)
		}
		if sh := strings.TrimSpace(el.BoxShadow); sh != "" && sh != "none" {
			shadows.add(sh)
		}
		if g := strings.TrimSpace(el.BackgroundImage); strings.Contains(g, "gradient") {
			gradients.add(g)
		}
		if r := strings.TrimSpace(el.BorderRadius); r != "" && r != "0px" {
			radii.add(r)
		}
	}

	set.Colors = Palette(all)
	set.Colors.Backgrounds = dedupe(bgs)
	set.Colors.Texts = dedupe(texts)
	set.Colors.Borders = dedupe(borders)
	set.Fonts = fonts.items
	set.Shadows = shadows.items
	set.Gradients = gradients.items
	set.BorderRadius = radii.items
	return set
}

// Palette deduplicates colors and buckets them by notation prefix.
// Backgrounds, Texts and Borders are left empty.
func Palette(colors []string) models.ColorPalette {
	p := models.ColorPalette{
		Backgrounds: []string{},
		Texts:       []string{},
		Borders:     []string{},
		Hex:         []string{},
		RGB:         []string{},
		RGBA:        []string{},
		HSL:         []string{},
	}
	p.All = dedupe(colors)
	for _, c := range p.All {
		switch {
		case strings.HasPrefix(c, "#"):
			p.Hex = append(p.Hex, c)
		case strings.HasPrefix(c, "rgb("):
			p.RGB = append(p.RGB, c)
		case strings.HasPrefix(c, "rgba("):
			p.RGBA = append(p.RGBA, c)
		case strings.HasPrefix(c, "hsl"):
			p.HSL = append(p.HSL, c)
		}
	}
	return p
}

// typographyKey identifies a distinct text style.
type typographyKey struct {
	tag, family, size, weight string
}

// DedupeTypography keeps the first sample of every
// (tag, fontFamily, fontSize, fontWeight) combination.
func DedupeTypography(samples []models.TypographySample) []models.TypographySample {
	seen := make(map[typographyKey]struct{}, len(samples))
	out := make([]models.TypographySample, 0, len(samples))
	for _, s := range samples {
		k := typographyKey{s.Tag, s.FontFamily, s.FontSize, s.FontWeight}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

func typographySamples(elements []models.StyleSample) []models.TypographySample {
	var out []models.TypographySample
	for _, el := range elements {
		if len(out) == MaxTypography {
			break
		}
		tag := strings.ToUpper(el.Tag)
		if _, ok := typographyTags[tag]; !ok {
			continue
		}
		out = append(out, models.TypographySample{
			Tag:           tag,
			ClassName:     el.ClassName,
			FontFamily:    el.FontFamily,
			FontSize:      el.FontSize,
			FontWeight:    el.FontWeight,
			LineHeight:    el.LineHeight,
			LetterSpacing: el.LetterSpacing,
			TextTransform: el.TextTransform,
			Color:         el.Color,
			Text:          truncateRunes(el.Text, maxTextRunes),
		})
	}
	return out
}

// Capped deduplicates values in first-seen order and keeps at most limit.
func Capped(values []string, limit int) []string {
	s := newOrderedSet(limit)
	for _, v := range values {
		s.add(v)
	}
	return s.items
}

// normalizeColor trims a computed color and drops fully transparent values.
func normalizeColor(c string) string {
	c = strings.TrimSpace(c)
	switch c {
	case "", "transparent", "rgba(0, 0, 0, 0)":
		return ""
	}
	return c
}

func appendNonEmpty(dst []string, values ...string) []string {
	for _, v := range values {
		if v != "" {
			dst = append(dst, v)
		}
	}
	return dst
}

func dedupe(values []string) []string {
	return Capped(values, 0)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

// orderedSet keeps insertion order; a positive limit stops accepting new
// values once reached.
type orderedSet struct {
	limit int
	seen  map[string]struct{}
	items []string
}

func newOrderedSet(limit int) *orderedSet {
	return &orderedSet{limit: limit, seen: map[string]struct{}{}, items: []string{}}
}

func (s *orderedSet) add(v string) {
	if s.limit > 0 && len(s.items) >= s.limit {
		return
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

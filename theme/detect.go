// Package theme detects the active light/dark color scheme of a live page,
// finds the control that switches it and flips it, falling back to direct
// DOM mutation when no control reacts.
package theme

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/use-agent/siteclone/models"
)

// brightnessThreshold splits dark from light backgrounds on the 0-255 scale.
const brightnessThreshold = 128

// Signals are the DOM and CSS hints read from the page in one evaluation.
type Signals struct {
	// DataTheme is the first non-empty data-theme/data-mode attribute on
	// <html> or <body>.
	DataTheme string `json:"dataTheme"`
	// Classes holds the class tokens of <html> followed by those of <body>.
	Classes []string `json:"classes"`
	// ColorScheme is the computed color-scheme of the root element.
	ColorScheme string `json:"colorScheme"`
	// BodyBackground is the computed background-color of <body>.
	BodyBackground string `json:"bodyBackground"`
}

// Decide classifies the signals. The first signal present wins: data
// attribute, class token, color-scheme, body background brightness. With
// none usable the page is assumed light.
func Decide(s Signals) models.ThemeName {
	if attr := strings.TrimSpace(s.DataTheme); attr != "" {
		if strings.Contains(strings.ToLower(attr), "dark") {
			return models.ThemeDark
		}
		return models.ThemeLight
	}

	hasLight := false
	for _, c := range s.Classes {
		switch strings.ToLower(c) {
		case "dark":
			return models.ThemeDark
		case "light":
			hasLight = true
		}
	}
	if hasLight {
		return models.ThemeLight
	}

	switch strings.ToLower(strings.TrimSpace(s.ColorScheme)) {
	case "dark":
		return models.ThemeDark
	case "light":
		return models.ThemeLight
	}

	if b, ok := Brightness(s.BodyBackground); ok {
		if b < brightnessThreshold {
			return models.ThemeDark
		}
		return models.ThemeLight
	}
	return models.ThemeLight
}

var rgbPattern = regexp.MustCompile(`^rgba?\(\s*([\d.]+)[,\s]+([\d.]+)[,\s]+([\d.]+)(?:\s*[,/]\s*([\d.]+%?))?\s*\)$`)

// Brightness returns the perceptual brightness (0.299R + 0.587G + 0.114B)
// of a computed rgb()/rgba() color. ok is false for other notations and for
// fully transparent colors, which say nothing about what is painted.
func Brightness(color string) (float64, bool) {
	m := rgbPattern.FindStringSubmatch(strings.TrimSpace(color))
	if m == nil {
		return 0, false
	}
	if m[4] != "" {
		alpha := strings.TrimSuffix(m[4], "%")
		a, err := strconv.ParseFloat(alpha, 64)
		if err != nil || a == 0 {
			return 0, false
		}
	}
	var ch [3]float64
	for i := range ch {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return 0, false
		}
		ch[i] = v
	}
	return (ch[0]*299 + ch[1]*587 + ch[2]*114) / 1000, true
}

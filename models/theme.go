package models

// ThemeName is a color-scheme variant of the page.
type ThemeName string

const (
	ThemeLight ThemeName = "light"
	ThemeDark  ThemeName = "dark"
)

// Opposite returns the other theme.
func (t ThemeName) Opposite() ThemeName {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Rect is a bounding box in CSS pixels. Y is measured from the top of the
// document, not the viewport.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ToggleInfo is the handle of a located theme switch control.
type ToggleInfo struct {
	Found     bool   `json:"found"`
	Selector  string `json:"selector,omitempty"`
	Tag       string `json:"tag,omitempty"`
	Text      string `json:"text,omitempty"`
	AriaLabel string `json:"aria_label,omitempty"`
	ClassName string `json:"class_name,omitempty"`
	Rect      Rect   `json:"rect"`
}

// Screenshot pairs a breakpoint name with the file it was written to.
type Screenshot struct {
	Breakpoint string `json:"breakpoint"`
	Path       string `json:"path"`
}

// ThemeSnapshot is the capture of one theme.
type ThemeSnapshot struct {
	Theme       ThemeName      `json:"theme"`
	Screenshots []Screenshot   `json:"screenshots"`
	Tokens      DesignTokenSet `json:"design_tokens"`
}

// ThemeInfo summarises the theme stage (data/theme_info.json).
type ThemeInfo struct {
	InitialTheme   ThemeName   `json:"initial_theme"`
	ThemesCaptured []ThemeName `json:"themes_captured"`
	ToggleFound    bool        `json:"toggle_found"`
	ToggleInfo     *ToggleInfo `json:"toggle_info"`
	SwitchMethod   string      `json:"switch_method,omitempty"`
}

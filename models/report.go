package models

import "time"

// AnimationSample is one animation or long transition found while sizing
// the frame capture window.
type AnimationSample struct {
	Element       string  `json:"element"`
	Name          string  `json:"name,omitempty"`
	Type          string  `json:"type,omitempty"`
	Duration      float64 `json:"duration"`
	Delay         float64 `json:"delay,omitempty"`
	Iterations    string  `json:"iterations,omitempty"`
	TotalDuration float64 `json:"totalDuration,omitempty"`
	Property      string  `json:"property,omitempty"`
}

// AnimationCapture is written to animations/animation_capture.json.
type AnimationCapture struct {
	Animations      []AnimationSample `json:"animations"`
	MaxDuration     float64           `json:"maxDuration"`
	CaptureDuration float64           `json:"capture_duration"`
	Interval        float64           `json:"interval"`
	Method          string            `json:"method"`
	Screenshots     []string          `json:"screenshots"`
	ScreencastTotal int               `json:"screencast_frames,omitempty"`
}

// DocumentInfo is the offline inspection of the rendered HTML.
type DocumentInfo struct {
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Language       string   `json:"language,omitempty"`
	SiteName       string   `json:"site_name,omitempty"`
	Byline         string   `json:"byline,omitempty"`
	Excerpt        string   `json:"excerpt,omitempty"`
	OGTitle        string   `json:"og_title,omitempty"`
	OGDescription  string   `json:"og_description,omitempty"`
	OGImage        string   `json:"og_image,omitempty"`
	OGType         string   `json:"og_type,omitempty"`
	InternalLinks  []string `json:"internal_links"`
	ExternalLinks  []string `json:"external_links"`
	Images         []string `json:"images"`
	HeroHTML       string   `json:"hero_html,omitempty"`
	MarkdownLength int      `json:"markdown_length"`
}

// LayoutReport groups the structural layout samples together with the
// responsive rules and inline styles found on the page.
type LayoutReport struct {
	ComputedStyles []LayoutSample `json:"computed_styles"`
	MediaQueries   []MediaQuery   `json:"media_queries"`
	InlineStyles   []InlineStyle  `json:"inline_styles"`
}

// AnimationReport groups keyframes and animated elements.
type AnimationReport struct {
	Keyframes        []Keyframe        `json:"keyframes"`
	AnimatedElements []AnimatedElement `json:"animated_elements"`
}

// MediaReport groups media inventories.
type MediaReport struct {
	Videos           []VideoElement    `json:"videos"`
	BackgroundImages []BackgroundImage `json:"background_images"`
	Images           []AssetRecord     `json:"images"`
}

// ExtractionReport is the terminal aggregate of a run. It is built once
// after every stage has finished and is not modified afterwards.
type ExtractionReport struct {
	URL          string              `json:"url"`
	ExtractedAt  time.Time           `json:"extracted_at"`
	Title        string              `json:"title"`
	Meta         map[string]string   `json:"meta"`
	Document     DocumentInfo        `json:"document"`
	DesignSystem DesignTokenSet      `json:"design_system"`
	Themes       ThemeInfo           `json:"themes"`
	Layout       LayoutReport        `json:"layout"`
	Animations   AnimationReport     `json:"animations"`
	Capture      *AnimationCapture   `json:"animation_capture,omitempty"`
	Media        MediaReport         `json:"media"`
	Assets       AssetManifest       `json:"assets"`
	Stylesheets  []StylesheetContent `json:"stylesheets_content"`
	NetworkLog   []NetworkEntry      `json:"network_log"`
	Links        []LinkTag           `json:"links"`
}

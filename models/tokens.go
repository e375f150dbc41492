package models

// StyleSample is the computed style of one visited element.
type StyleSample struct {
	Tag             string `json:"tag"`
	ClassName       string `json:"className"`
	Text            string `json:"text"`
	Color           string `json:"color"`
	BackgroundColor string `json:"backgroundColor"`
	BorderColor     string `json:"borderColor"`
	OutlineColor    string `json:"outlineColor"`
	FontFamily      string `json:"fontFamily"`
	FontSize        string `json:"fontSize"`
	FontWeight      string `json:"fontWeight"`
	LineHeight      string `json:"lineHeight"`
	LetterSpacing   string `json:"letterSpacing"`
	TextTransform   string `json:"textTransform"`
	BoxShadow       string `json:"boxShadow"`
	BorderRadius    string `json:"borderRadius"`
	BackgroundImage string `json:"backgroundImage"`
}

// RawStyles is the unreduced output of the in-page style sampler.
type RawStyles struct {
	CSSVariables map[string]string `json:"cssVariables"`
	Elements     []StyleSample     `json:"elements"`
}

// ColorPalette holds deduplicated color strings by role and by notation.
type ColorPalette struct {
	Backgrounds []string `json:"backgrounds"`
	Texts       []string `json:"texts"`
	Borders     []string `json:"borders"`
	All         []string `json:"all"`
	Hex         []string `json:"hex"`
	RGB         []string `json:"rgb"`
	RGBA        []string `json:"rgba"`
	HSL         []string `json:"hsl"`
}

// TypographySample is one distinct text style.
type TypographySample struct {
	Tag           string `json:"tag"`
	ClassName     string `json:"className,omitempty"`
	FontFamily    string `json:"fontFamily"`
	FontSize      string `json:"fontSize"`
	FontWeight    string `json:"fontWeight"`
	LineHeight    string `json:"lineHeight"`
	LetterSpacing string `json:"letterSpacing"`
	TextTransform string `json:"textTransform"`
	Color         string `json:"color"`
	Text          string `json:"text"`
}

// DesignTokenSet is the reduced design system of one theme.
type DesignTokenSet struct {
	Colors       ColorPalette       `json:"colors"`
	CSSVariables map[string]string  `json:"css_variables"`
	Fonts        []string           `json:"fonts"`
	FontFaces    []FontFace         `json:"font_faces,omitempty"`
	Typography   []TypographySample `json:"typography"`
	Shadows      []string           `json:"shadows"`
	Gradients    []string           `json:"gradients"`
	BorderRadius []string           `json:"borderRadius"`
}

package models

// Keyframe is one @keyframes rule rendered back to CSS text.
type Keyframe struct {
	Name string `json:"name"`
	CSS  string `json:"css"`
}

// MediaQuery is one @media rule.
type MediaQuery struct {
	Condition string `json:"condition"`
	CSS       string `json:"css"`
}

// AnimatedElement is an element running a CSS animation or a transition.
type AnimatedElement struct {
	Tag                      string `json:"tag"`
	ClassName                string `json:"className"`
	ID                       string `json:"id"`
	Animation                string `json:"animation,omitempty"`
	AnimationName            string `json:"animationName,omitempty"`
	AnimationDuration        string `json:"animationDuration,omitempty"`
	AnimationTimingFunction  string `json:"animationTimingFunction,omitempty"`
	AnimationDelay           string `json:"animationDelay,omitempty"`
	AnimationIterationCount  string `json:"animationIterationCount,omitempty"`
	AnimationDirection       string `json:"animationDirection,omitempty"`
	AnimationFillMode        string `json:"animationFillMode,omitempty"`
	Transition               string `json:"transition,omitempty"`
	TransitionProperty       string `json:"transitionProperty,omitempty"`
	TransitionDuration       string `json:"transitionDuration,omitempty"`
	TransitionTimingFunction string `json:"transitionTimingFunction,omitempty"`
}

// InlineStyle is an element carrying a style attribute.
type InlineStyle struct {
	Tag       string `json:"tag"`
	ClassName string `json:"className"`
	ID        string `json:"id"`
	Style     string `json:"style"`
}

// LayoutSample is the computed layout of an element matched by one of the
// structural selectors.
type LayoutSample struct {
	Selector            string `json:"selector"`
	Tag                 string `json:"tag"`
	ClassName           string `json:"className"`
	Display             string `json:"display"`
	Position            string `json:"position"`
	Width               string `json:"width"`
	MaxWidth            string `json:"maxWidth"`
	Height              string `json:"height"`
	Padding             string `json:"padding"`
	Margin              string `json:"margin"`
	Gap                 string `json:"gap"`
	GridTemplateColumns string `json:"gridTemplateColumns"`
	GridTemplateRows    string `json:"gridTemplateRows"`
	FlexDirection       string `json:"flexDirection"`
	JustifyContent      string `json:"justifyContent"`
	AlignItems          string `json:"alignItems"`
	BackgroundColor     string `json:"backgroundColor"`
	BackgroundImage     string `json:"backgroundImage"`
	BorderRadius        string `json:"borderRadius"`
	BoxShadow           string `json:"boxShadow"`
	Overflow            string `json:"overflow"`
	ZIndex              string `json:"zIndex"`
}

// FontFace is one @font-face rule.
type FontFace struct {
	CSS         string `json:"css"`
	FontFamily  string `json:"fontFamily"`
	Src         string `json:"src"`
	FontWeight  string `json:"fontWeight"`
	FontStyle   string `json:"fontStyle"`
	FontDisplay string `json:"fontDisplay"`
}

// BackgroundImage is an element with a non-empty background-image.
type BackgroundImage struct {
	Tag                string `json:"tag"`
	ClassName          string `json:"className"`
	BackgroundImage    string `json:"backgroundImage"`
	BackgroundSize     string `json:"backgroundSize"`
	BackgroundPosition string `json:"backgroundPosition"`
	BackgroundRepeat   string `json:"backgroundRepeat"`
}

// LinkTag is one <link> element.
type LinkTag struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
	Type string `json:"type"`
	As   string `json:"as"`
}

// MediaSource is a <source> child of a media element.
type MediaSource struct {
	Src  string `json:"src"`
	Type string `json:"type"`
}

// VideoElement is the state of one <video> element in the live DOM.
type VideoElement struct {
	Index         int               `json:"index"`
	Src           string            `json:"src"`
	CurrentSrc    string            `json:"currentSrc"`
	Poster        string            `json:"poster"`
	Autoplay      bool              `json:"autoplay"`
	Loop          bool              `json:"loop"`
	Muted         bool              `json:"muted"`
	PlaysInline   bool              `json:"playsInline"`
	Preload       string            `json:"preload"`
	Width         float64           `json:"width"`
	Height        float64           `json:"height"`
	Duration      *float64          `json:"duration"`
	Sources       []MediaSource     `json:"sources"`
	IsBlob        bool              `json:"isBlob"`
	ParentClasses string            `json:"parentClasses"`
	Styles        map[string]string `json:"styles,omitempty"`
}

// PageData is the full-page extraction result.
type PageData struct {
	HTML             string            `json:"html"`
	Title            string            `json:"title"`
	Meta             map[string]string `json:"meta"`
	Styles           RawStyles         `json:"styles"`
	Keyframes        []Keyframe        `json:"keyframes"`
	MediaQueries     []MediaQuery      `json:"mediaQueries"`
	Animations       []AnimatedElement `json:"animations"`
	InlineStyles     []InlineStyle     `json:"inlineStyles"`
	Layout           []LayoutSample    `json:"layout"`
	Videos           []VideoElement    `json:"videos"`
	BackgroundImages []BackgroundImage `json:"backgroundImages"`
	Links            []LinkTag         `json:"links"`
	FontFaces        []FontFace        `json:"fontFaces"`
}

// StylesheetContent is the text of one stylesheet.
type StylesheetContent struct {
	Href      string   `json:"href"`
	Inline    bool     `json:"isInline,omitempty"`
	Index     int      `json:"index"`
	Rules     []string `json:"rules"`
	Fetched   bool     `json:"fetched,omitempty"`
	FetchedBy string   `json:"fetched_by,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// ComponentNode is a depth-bounded snapshot of one DOM element.
type ComponentNode struct {
	Tag        string            `json:"tag"`
	ID         string            `json:"id,omitempty"`
	Classes    []string          `json:"classes"`
	Role       string            `json:"role,omitempty"`
	Text       string            `json:"text,omitempty"`
	Dimensions Dimensions        `json:"dimensions"`
	Layout     map[string]string `json:"layout"`
	Children   []ComponentNode   `json:"children"`
}

// Dimensions is the rounded size of an element box.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Depth returns the number of levels in the subtree rooted at n.
func (n ComponentNode) Depth() int {
	deepest := 0
	for _, c := range n.Children {
		if d := c.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

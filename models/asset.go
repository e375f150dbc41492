package models

// Category is the routing bucket of a captured network response.
type Category string

const (
	CategoryFont         Category = "font"
	CategoryStylesheet   Category = "stylesheet"
	CategoryScript       Category = "script"
	CategoryImage        Category = "image"
	CategoryVideo        Category = "video"
	CategoryRive         Category = "rive"
	CategoryUnclassified Category = "unclassified"
)

// Dir returns the directory name under assets/ that holds files of the
// category. Unclassified responses are never persisted.
func (c Category) Dir() string {
	switch c {
	case CategoryFont:
		return "fonts"
	case CategoryStylesheet:
		return "css"
	case CategoryScript:
		return "js"
	case CategoryImage:
		return "images"
	case CategoryVideo:
		return "videos"
	case CategoryRive:
		return "rive"
	default:
		return ""
	}
}

// CapturedResponse is one network response observed while the page loads
// or is interacted with.
type CapturedResponse struct {
	URL         string
	Status      int
	ContentType string
	Headers     map[string]string
	Body        []byte

	// BodyErr is set when the body could not be retrieved.
	BodyErr error
}

// AssetRecord is one persisted asset file.
type AssetRecord struct {
	URL         string `json:"url"`
	LocalPath   string `json:"local_path"`
	Filename    string `json:"filename"`
	Size        int    `json:"size"`
	ContentType string `json:"content_type"`
}

// NetworkEntry is the log line kept for every observed response,
// classified or not.
type NetworkEntry struct {
	URL         string            `json:"url"`
	Status      int               `json:"status"`
	ContentType string            `json:"content_type"`
	Headers     map[string]string `json:"headers,omitempty"`
	Category    Category          `json:"category,omitempty"`
	SavedTo     string            `json:"saved_to,omitempty"`
	BodyError   string            `json:"body_error,omitempty"`
}

// VideoSource describes a media response saved under assets/videos.
type VideoSource struct {
	URL         string `json:"url"`
	SavedAs     string `json:"saved_as"`
	ContentType string `json:"content_type"`
}

// AssetManifest lists every persisted asset grouped by category.
type AssetManifest struct {
	Fonts       []AssetRecord `json:"fonts"`
	Images      []AssetRecord `json:"images"`
	Videos      []AssetRecord `json:"videos"`
	Stylesheets []AssetRecord `json:"stylesheets"`
	Scripts     []AssetRecord `json:"scripts"`
	Rive        []AssetRecord `json:"rive"`
}

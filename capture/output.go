package capture

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/use-agent/siteclone/models"
)

// Output writes artifacts under the run's output directory.
type Output struct {
	root string
}

// NewOutput returns an Output rooted at dir.
func NewOutput(dir string) *Output {
	return &Output{root: dir}
}

// Root is the output directory.
func (o *Output) Root() string { return o.root }

// Path joins rel onto the output directory.
func (o *Output) Path(rel ...string) string {
	return filepath.Join(append([]string{o.root}, rel...)...)
}

// Prepare creates the output and data directories.
func (o *Output) Prepare() error {
	for _, dir := range []string{o.root, o.Path("data")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return models.NewCaptureError(models.ErrCodeWrite, "create output directory", err)
		}
	}
	return nil
}

// WriteFile writes data to rel, creating parent directories.
func (o *Output) WriteFile(rel string, data []byte) error {
	p := o.Path(rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return models.NewCaptureError(models.ErrCodeWrite, fmt.Sprintf("create directory for %s", rel), err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return models.NewCaptureError(models.ErrCodeWrite, fmt.Sprintf("write %s", rel), err)
	}
	return nil
}

// WriteJSON writes v as indented JSON to rel.
func (o *Output) WriteJSON(rel string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return models.NewCaptureError(models.ErrCodeWrite, fmt.Sprintf("encode %s", rel), err)
	}
	return o.WriteFile(rel, append(data, '\n'))
}

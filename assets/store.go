package assets

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/use-agent/siteclone/models"
)

// Store accumulates every observed response and persists classified bodies
// under <root>/assets/<category>/. It is safe for concurrent use; response
// handlers append in whatever order responses complete.
type Store struct {
	root   string
	logger *slog.Logger

	mu       sync.Mutex
	network  []models.NetworkEntry
	manifest models.AssetManifest
	videos   []models.VideoSource
	saved    map[string]string // url -> local path
}

// NewStore creates a Store rooted at the output directory.
func NewStore(root string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		root:   root,
		logger: logger,
		saved:  make(map[string]string),
	}
}

// Record classifies one response, writes its body when it is a 200 with a
// recognised category, and appends it to the network log. A response whose
// body could not be read is logged with its error and excluded from the
// category lists.
func (s *Store) Record(resp models.CapturedResponse) models.NetworkEntry {
	entry := models.NetworkEntry{
		URL:         resp.URL,
		Status:      resp.Status,
		ContentType: resp.ContentType,
		Headers:     resp.Headers,
	}

	if resp.Status != http.StatusOK {
		return s.appendEntry(entry)
	}
	if resp.BodyErr != nil {
		entry.BodyError = resp.BodyErr.Error()
		s.logger.Debug("asset body unavailable", "url", resp.URL, "error", resp.BodyErr)
		return s.appendEntry(entry)
	}

	cat := Classify(resp.URL, resp.ContentType, resp.Body)
	entry.Category = cat
	if cat == models.CategoryUnclassified {
		return s.appendEntry(entry)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.saved[resp.URL]; ok {
		entry.SavedTo = existing
		s.network = append(s.network, entry)
		return entry
	}

	filename := SafeFilename(resp.URL, cat)
	localPath, err := s.write(cat, filename, resp.Body)
	if err != nil {
		entry.BodyError = err.Error()
		s.logger.Warn("asset write failed", "url", resp.URL, "category", cat, "error", err)
		s.network = append(s.network, entry)
		return entry
	}

	entry.SavedTo = localPath
	s.saved[resp.URL] = localPath
	s.network = append(s.network, entry)

	rec := models.AssetRecord{
		URL:         resp.URL,
		LocalPath:   localPath,
		Filename:    filename,
		Size:        len(resp.Body),
		ContentType: resp.ContentType,
	}
	switch cat {
	case models.CategoryFont:
		s.manifest.Fonts = append(s.manifest.Fonts, rec)
	case models.CategoryStylesheet:
		s.manifest.Stylesheets = append(s.manifest.Stylesheets, rec)
	case models.CategoryScript:
		s.manifest.Scripts = append(s.manifest.Scripts, rec)
	case models.CategoryImage:
		s.manifest.Images = append(s.manifest.Images, rec)
	case models.CategoryVideo:
		s.manifest.Videos = append(s.manifest.Videos, rec)
		s.videos = append(s.videos, models.VideoSource{
			URL:         resp.URL,
			SavedAs:     filename,
			ContentType: resp.ContentType,
		})
	case models.CategoryRive:
		s.manifest.Rive = append(s.manifest.Rive, rec)
	}

	s.logger.Debug("asset saved", "category", cat, "file", filename, "size", len(resp.Body))
	return entry
}

func (s *Store) appendEntry(entry models.NetworkEntry) models.NetworkEntry {
	s.mu.Lock()
	s.network = append(s.network, entry)
	s.mu.Unlock()
	return entry
}

func (s *Store) write(cat models.Category, filename string, body []byte) (string, error) {
	dir := filepath.Join(s.root, "assets", cat.Dir())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("assets: create %s: %w", dir, err)
	}
	p := filepath.Join(dir, filename)
	if err := os.WriteFile(p, body, 0o644); err != nil {
		return "", fmt.Errorf("assets: write %s: %w", p, err)
	}
	return p, nil
}

// Manifest returns a copy of the per-category asset lists.
func (s *Store) Manifest() models.AssetManifest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.AssetManifest{
		Fonts:       append([]models.AssetRecord{}, s.manifest.Fonts...),
		Images:      append([]models.AssetRecord{}, s.manifest.Images...),
		Videos:      append([]models.AssetRecord{}, s.manifest.Videos...),
		Stylesheets: append([]models.AssetRecord{}, s.manifest.Stylesheets...),
		Scripts:     append([]models.AssetRecord{}, s.manifest.Scripts...),
		Rive:        append([]models.AssetRecord{}, s.manifest.Rive...),
	}
}

// NetworkLog returns a copy of every recorded response entry.
func (s *Store) NetworkLog() []models.NetworkEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.NetworkEntry{}, s.network...)
}

// VideoSources returns the media responses saved under assets/videos.
func (s *Store) VideoSources() []models.VideoSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.VideoSource{}, s.videos...)
}

// Rive returns the saved Rive animation binaries.
func (s *Store) Rive() []models.AssetRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.AssetRecord{}, s.manifest.Rive...)
}

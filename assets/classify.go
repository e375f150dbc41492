// Package assets classifies captured network responses and persists their
// bodies under a per-category directory.
package assets

import (
	"bytes"
	"net/url"
	"path"
	"strings"

	"github.com/use-agent/siteclone/models"
)

var (
	fontExts  = extSet(".woff2", ".woff", ".ttf", ".otf", ".eot")
	imageExts = extSet(".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".ico")
	videoExts = extSet(".mp4", ".webm", ".mov", ".avi", ".m3u8", ".mpd")
)

// riveMagic is the 4-byte header of a Rive runtime file.
var riveMagic = []byte("RIVE")

// riveMinSize is the smallest octet-stream body sniffed for the Rive header.
const riveMinSize = 1000

func extSet(exts ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		m[e] = struct{}{}
	}
	return m
}

// Classify routes a response to exactly one category. Rules are evaluated
// in a fixed order and the first match wins:
//
//  1. font        .woff2/.woff/.ttf/.otf/.eot or content-type containing "font"
//  2. stylesheet  .css or content-type containing "text/css"
//  3. script      .js or content-type containing "javascript"
//  4. image       common raster/vector extensions or content-type containing "image"
//  5. video       video/stream extensions or content-type containing "video"/"audio"
//  6. rive        ".riv" anywhere in the URL, or an octet-stream body over
//                 1000 bytes starting with the RIVE header
//  7. unclassified
//
// Classify depends only on its arguments.
func Classify(rawURL, contentType string, body []byte) models.Category {
	ext := urlExt(rawURL)
	ct := strings.ToLower(contentType)

	switch {
	case has(fontExts, ext) || strings.Contains(ct, "font"):
		return models.CategoryFont
	case ext == ".css" || strings.Contains(ct, "text/css"):
		return models.CategoryStylesheet
	case ext == ".js" || strings.Contains(ct, "javascript"):
		return models.CategoryScript
	case has(imageExts, ext) || strings.Contains(ct, "image"):
		return models.CategoryImage
	case has(videoExts, ext) || strings.Contains(ct, "video") || strings.Contains(ct, "audio"):
		return models.CategoryVideo
	case isRive(rawURL, ct, body):
		return models.CategoryRive
	default:
		return models.CategoryUnclassified
	}
}

func isRive(rawURL, ct string, body []byte) bool {
	if strings.Contains(strings.ToLower(rawURL), ".riv") {
		return true
	}
	return strings.Contains(ct, "application/octet-stream") &&
		len(body) > riveMinSize &&
		bytes.HasPrefix(body, riveMagic)
}

func has(set map[string]struct{}, ext string) bool {
	_, ok := set[ext]
	return ok
}

// urlExt returns the lower-cased extension of the URL path, ignoring the
// query string and fragment. Unparseable URLs fall back to the raw string.
func urlExt(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	return strings.ToLower(path.Ext(p))
}

package assets

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"regexp"
	"strings"

	"github.com/use-agent/siteclone/models"
)

// unsafeChar matches everything outside [A-Za-z0-9_.-].
var unsafeChar = regexp.MustCompile(`[^\w\-.]`)

// defaultExt is appended when the URL basename carries no extension.
var defaultExt = map[models.Category]string{
	models.CategoryFont:       ".woff2",
	models.CategoryStylesheet: ".css",
	models.CategoryScript:     ".js",
	models.CategoryImage:      ".png",
	models.CategoryVideo:      ".mp4",
	models.CategoryRive:       ".riv",
}

// URLHash returns the first 8 hex characters of the MD5 of the URL.
func URLHash(rawURL string) string {
	sum := md5.Sum([]byte(rawURL))
	return hex.EncodeToString(sum[:])[:8]
}

// SafeFilename builds "{basename}_{hash}{ext}" for a URL. The same URL
// always maps to the same name, and two URLs sharing a basename differ by
// their hash suffix.
func SafeFilename(rawURL string, category models.Category) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}

	name := p[strings.LastIndex(p, "/")+1:]
	if name == "" {
		name = "index"
	}
	name = unsafeChar.ReplaceAllString(name, "_")

	if !strings.Contains(name, ".") {
		name += defaultExt[category]
	}

	stem, ext := splitExt(name)
	out := stem + "_" + URLHash(rawURL) + ext

	if category == models.CategoryRive && !strings.HasSuffix(out, ".riv") {
		out += ".riv"
	}
	return out
}

// splitExt splits name at its last dot. Leading dots belong to the stem,
// so ".htaccess" has no extension.
func splitExt(name string) (stem, ext string) {
	base := strings.TrimLeft(name, ".")
	i := strings.LastIndex(base, ".")
	if i < 0 {
		return name, ""
	}
	i += len(name) - len(base)
	return name[:i], name[i:]
}

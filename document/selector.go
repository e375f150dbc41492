package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// SelectFirst returns the outer HTML of the first element matched by the
// earliest selector in the list that matches anything. ok is false when no
// selector matches.
func SelectFirst(rawHTML string, selectors []string) (string, bool, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", false, err
	}

	for _, s := range selectors {
		sel, err := cascadia.Parse(s)
		if err != nil {
			return "", false, fmt.Errorf("selector %q: %w", s, err)
		}
		node := cascadia.Query(doc, sel)
		if node == nil {
			continue
		}
		var buf bytes.Buffer
		if err := html.Render(&buf, node); err != nil {
			return "", false, err
		}
		return buf.String(), true, nil
	}
	return "", false, nil
}

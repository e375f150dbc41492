package tokens

import (
	"fmt"
	"strings"

	"github.com/use-agent/siteclone/models"
)

// Limits applied when rendering the Tailwind theme extension.
const (
	tailwindColors  = 10
	tailwindFonts   = 5
	tailwindSizes   = 15
	tailwindRadii   = 8
	tailwindShadows = 5
)

// TailwindConfig renders the token set as a tailwind.config.js module.
// Keys are indexed by position (bg-0, bg-1, ...). Indices follow the
// token set's order and carry no meaning across runs.
func TailwindConfig(set models.DesignTokenSet, sourceURL string) string {
	bgs := set.Colors.Backgrounds
	if len(bgs) == 0 {
		bgs = head(set.Colors.RGB, tailwindColors)
	}
	texts := set.Colors.Texts
	if len(texts) == 0 {
		texts = head(set.Colors.Hex, tailwindColors)
	}

	sizes := make([]string, 0, len(set.Typography))
	for _, t := range set.Typography {
		if t.FontSize != "" {
			sizes = append(sizes, t.FontSize)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// tailwind.config.js - Generated from %s\n", sourceURL)
	b.WriteString("module.exports = {\n  theme: {\n    extend: {\n")

	b.WriteString("      colors: {\n        // Background colors\n")
	writeEntries(&b, "bg", bgs, "        '%s': '%s',\n")
	b.WriteString("        // Text colors\n")
	writeEntries(&b, "text", texts, "        '%s': '%s',\n")
	b.WriteString("      },\n")

	b.WriteString("      fontFamily: {\n")
	writeEntries(&b, "font", head(set.Fonts, tailwindFonts), "        '%s': ['%s', 'sans-serif'],\n")
	b.WriteString("      },\n")

	b.WriteString("      fontSize: {\n")
	writeEntries(&b, "size", Capped(sizes, tailwindSizes), "        '%s': '%s',\n")
	b.WriteString("      },\n")

	b.WriteString("      borderRadius: {\n")
	writeEntries(&b, "radius", head(set.BorderRadius, tailwindRadii), "        '%s': '%s',\n")
	b.WriteString("      },\n")

	b.WriteString("      boxShadow: {\n")
	writeEntries(&b, "shadow", head(set.Shadows, tailwindShadows), "        '%s': '%s',\n")
	b.WriteString("      },\n")

	b.WriteString("    },\n  },\n};\n")
	return b.String()
}

func writeEntries(b *strings.Builder, prefix string, values []string, format string) {
	for i, v := range values {
		fmt.Fprintf(b, format, fmt.Sprintf("%s-%d", prefix, i), jsString(v))
	}
}

// jsString escapes a value for a single-quoted JavaScript literal.
func jsString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", "")
	return r.Replace(s)
}

func head(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}

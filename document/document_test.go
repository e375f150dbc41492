package document

import (
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html lang="en">
<head>
  <title> Lumina </title>
  <meta name="description" content="A video landing page">
  <meta property="og:title" content="Lumina OG">
  <meta property="og:image" content="https://cdn.example.com/og.png">
</head>
<body>
  <header><nav>
    <a href="/about">About</a>
    <a href="/about#team">Team</a>
    <a href="https://other.example.org/x">Other</a>
    <a href="mailto:hi@example.com">Mail</a>
  </nav></header>
  <main>
    <section class="hero-banner"><h1>Hello</h1></section>
    <img src="/img/a.png" alt="a">
    <img src="/img/a.png" alt="dup">
    <img src="data:image/png;base64,AAAA">
  </main>
</body>
</html>`

func TestInspect(t *testing.T) {
	info := Inspect(samplePage, "https://example.com/share/page")

	if info.Title != "Lumina" {
		t.Errorf("Title = %q", info.Title)
	}
	if info.Language != "en" {
		t.Errorf("Language = %q", info.Language)
	}
	if info.Description != "A video landing page" {
		t.Errorf("Description = %q", info.Description)
	}
	if info.OGTitle != "Lumina OG" || info.OGImage != "https://cdn.example.com/og.png" {
		t.Errorf("OG = %q %q", info.OGTitle, info.OGImage)
	}
	if len(info.InternalLinks) != 1 || info.InternalLinks[0] != "https://example.com/about" {
		t.Errorf("InternalLinks = %v", info.InternalLinks)
	}
	if len(info.ExternalLinks) != 1 {
		t.Errorf("ExternalLinks = %v", info.ExternalLinks)
	}
	if len(info.Images) != 1 || info.Images[0] != "https://example.com/img/a.png" {
		t.Errorf("Images = %v", info.Images)
	}
	if !strings.Contains(info.HeroHTML, `class="hero-banner"`) {
		t.Errorf("HeroHTML = %q", info.HeroHTML)
	}
}

func TestInspect_HeroIsSanitized(t *testing.T) {
	page := `<html><body><section class="hero" onclick="track()"><script>alert(1)</script><h1>Hi</h1></section></body></html>`
	info := Inspect(page, "https://example.com")

	if !strings.Contains(info.HeroHTML, `class="hero"`) || !strings.Contains(info.HeroHTML, "<h1>Hi</h1>") {
		t.Errorf("HeroHTML lost structure: %q", info.HeroHTML)
	}
	if strings.Contains(info.HeroHTML, "onclick") || strings.Contains(info.HeroHTML, "<script") {
		t.Errorf("HeroHTML not sanitized: %q", info.HeroHTML)
	}
}

func TestInspect_BadURLKeepsMetadata(t *testing.T) {
	info := Inspect(samplePage, "://bad")
	if info.Title != "Lumina" {
		t.Errorf("Title = %q", info.Title)
	}
	if len(info.InternalLinks) != 0 || len(info.Images) != 0 {
		t.Errorf("links/images resolved without a base: %v %v", info.InternalLinks, info.Images)
	}
}

func TestSelectFirst(t *testing.T) {
	tests := []struct {
		name      string
		selectors []string
		want      string
		wantOK    bool
	}{
		{"earliest matching selector wins", []string{".missing", "h1", "section"}, "<h1>Hello</h1>", true},
		{"no match", []string{".missing"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := SelectFirst(samplePage, tt.selectors)
			if err != nil {
				t.Fatal(err)
			}
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("SelectFirst = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSelectFirst_InvalidSelector(t *testing.T) {
	if _, _, err := SelectFirst(samplePage, []string{"[["}); err == nil {
		t.Error("expected a selector parse error")
	}
}

func TestExtractTitle(t *testing.T) {
	if got := extractTitle([]byte("<div><title>  Broken </title><p unclosed")); got != "Broken" {
		t.Errorf("extractTitle = %q", got)
	}
	if got := extractTitle([]byte("<p>no title</p>")); got != "" {
		t.Errorf("extractTitle = %q, want empty", got)
	}
}

func TestMarkdown(t *testing.T) {
	md, err := NewConverter().Markdown(samplePage, "https://example.com")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(md, "# Hello") {
		t.Errorf("markdown missing heading:\n%s", md)
	}
	if !strings.Contains(md, "(https://example.com/about)") {
		t.Errorf("markdown did not resolve relative link:\n%s", md)
	}
}

// Package document inspects the rendered HTML of a captured page offline:
// metadata, links, images, the hero section and a Markdown text snapshot.
package document

import (
	"bytes"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/use-agent/siteclone/models"
)

// HeroSelectors locate the first prominent section of a landing page, in
// priority order.
var HeroSelectors = []string{
	"section:first-of-type",
	".hero",
	`[class*="hero"]`,
	"header + section",
	"main > section:first-child",
	"main > div:first-child",
}

// heroPolicy keeps the hero snapshot's structure and class names but drops
// scripts and event handlers.
var heroPolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowStyling()
	return p
}()

// Inspect parses rawHTML and collects document-level facts. Parsing
// problems degrade to empty fields; Inspect never fails.
func Inspect(rawHTML, sourceURL string) models.DocumentInfo {
	info := models.DocumentInfo{
		InternalLinks: []string{},
		ExternalLinks: []string{},
		Images:        []string{},
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		slog.Warn("document: parse failed", "url", sourceURL, "error", err)
		return info
	}

	info.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if info.Title == "" {
		info.Title = extractTitle([]byte(rawHTML))
	}
	info.Language, _ = doc.Find("html").First().Attr("lang")
	info.Description = metaContent(doc, `meta[name="description"]`)
	info.OGTitle = metaContent(doc, `meta[property="og:title"]`)
	info.OGDescription = metaContent(doc, `meta[property="og:description"]`)
	info.OGImage = metaContent(doc, `meta[property="og:image"]`)
	info.OGType = metaContent(doc, `meta[property="og:type"]`)

	if base, err := url.Parse(sourceURL); err == nil {
		info.InternalLinks, info.ExternalLinks = links(doc, base)
		info.Images = images(doc, base)

		if article, err := readability.FromReader(strings.NewReader(rawHTML), base); err == nil {
			info.Byline = article.Byline
			info.Excerpt = article.Excerpt
			info.SiteName = article.SiteName
			if info.Language == "" {
				info.Language = article.Language
			}
		} else {
			slog.Debug("document: readability failed", "url", sourceURL, "error", err)
		}
	}

	if hero, ok, err := SelectFirst(rawHTML, HeroSelectors); err == nil && ok {
		info.HeroHTML = heroPolicy.Sanitize(hero)
	}
	return info
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(v)
}

// links resolves every http(s) anchor against base and splits them by host.
func links(doc *goquery.Document, base *url.URL) (internal, external []string) {
	internal, external = []string{}, []string{}
	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" {
			return
		}
		resolved, err := base.Parse(href)
		if err != nil || (resolved.Scheme != "http" && resolved.Scheme != "https") {
			return
		}
		resolved.Fragment = ""
		abs := resolved.String()
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}

		if strings.EqualFold(resolved.Host, base.Host) {
			internal = append(internal, abs)
		} else {
			external = append(external, abs)
		}
	})
	return internal, external
}

func images(doc *goquery.Document, base *url.URL) []string {
	out := []string{}
	seen := make(map[string]struct{})
	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		resolved, err := base.Parse(src)
		if src == "" || err != nil || resolved.Scheme == "data" {
			return
		}
		abs := resolved.String()
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		out = append(out, abs)
	})
	return out
}

// extractTitle scans for the first <title> with the tokenizer, which still
// works on markup too broken for a full parse to find the head.
func extractTitle(body []byte) string {
	z := html.NewTokenizer(bytes.NewReader(body))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			tn, _ := z.TagName()
			if string(tn) == "title" {
				if z.Next() == html.TextToken {
					return strings.TrimSpace(string(z.Text()))
				}
				return ""
			}
		}
	}
}

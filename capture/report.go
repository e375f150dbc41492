package capture

import (
	"bytes"
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/use-agent/siteclone/document"
	"github.com/use-agent/siteclone/models"
	"github.com/use-agent/siteclone/tokens"
)

// assemble merges the stage results into the final report.
func (o *Orchestrator) assemble(r *run) *models.ExtractionReport {
	design := tokens.Build(r.data.Styles)
	design.FontFaces = r.data.FontFaces

	doc := document.Inspect(r.data.HTML, r.url)
	title := r.data.Title
	if title == "" {
		title = doc.Title
	}
	manifest := o.store.Manifest()

	return &models.ExtractionReport{
		URL:          r.url,
		ExtractedAt:  o.now().UTC(),
		Title:        title,
		Meta:         nonNilMap(r.data.Meta),
		Document:     doc,
		DesignSystem: design,
		Themes:       r.themeInfo,
		Layout: models.LayoutReport{
			ComputedStyles: r.data.Layout,
			MediaQueries:   r.data.MediaQueries,
			InlineStyles:   r.data.InlineStyles,
		},
		Animations: models.AnimationReport{
			Keyframes:        r.data.Keyframes,
			AnimatedElements: r.data.Animations,
		},
		Capture: r.animation,
		Media: models.MediaReport{
			Videos:           r.videos,
			BackgroundImages: r.data.BackgroundImages,
			Images:           manifest.Images,
		},
		Assets:      manifest,
		Stylesheets: r.sheets,
		NetworkLog:  o.store.NetworkLog(),
		Links:       r.data.Links,
	}
}

// writeArtifacts writes the output bundle. Each artifact is independent; a
// failed write is logged and the rest are still attempted.
func (o *Orchestrator) writeArtifacts(report *models.ExtractionReport, r *run) {
	write := func(rel string, fn func() error) {
		if err := fn(); err != nil {
			o.logger.Warn("artifact write failed", "file", rel, "error", err)
		}
	}
	text := func(rel, s string) {
		write(rel, func() error { return o.out.WriteFile(rel, []byte(s)) })
	}
	data := func(rel string, v any) {
		write(rel, func() error { return o.out.WriteJSON(rel, v) })
	}

	if r.data.HTML != "" {
		text("index.html", r.data.HTML)
		md, err := o.markdown.Markdown(r.data.HTML, r.url)
		if err != nil {
			o.logger.Warn("markdown conversion failed", "error", err)
		} else {
			report.Document.MarkdownLength = len(md)
			text("content.md", md)
		}
	}
	text("combined_styles.css", CombineCSS(r.sheets))
	text("tailwind.config.js", tokens.TailwindConfig(report.DesignSystem, report.URL))

	data("data/design_tokens.json", report.DesignSystem)
	data("data/asset_manifest.json", report.Assets)
	data("data/animations.json", report.Animations)
	data("data/component_tree.json", r.tree)
	data("data/video_sources.json", nonNilSlice(o.store.VideoSources()))
	data("data/typography.json", nonNilSlice(report.DesignSystem.Typography))
	data("data/media_queries.json", nonNilSlice(report.Layout.MediaQueries))
	if rive := o.store.Rive(); len(rive) > 0 {
		data("data/rive_animations.json", rive)
		o.logger.Info("rive animations saved", "count", len(rive))
	}
	data("extraction_report.json", report)

	write("ANALYSIS_REPORT.md", func() error {
		md, err := AnalysisReport(report, o.now())
		if err != nil {
			return err
		}
		return o.out.WriteFile("ANALYSIS_REPORT.md", []byte(md))
	})
}

// CombineCSS concatenates every stylesheet into one file, each preceded by
// a banner naming where it came from.
func CombineCSS(sheets []models.StylesheetContent) string {
	var b strings.Builder
	b.WriteString("/* Combined CSS extracted from website */\n\n")
	for _, s := range sheets {
		if s.Href != "" {
			fmt.Fprintf(&b, "\n/* === External: %s === */\n", s.Href)
		} else {
			fmt.Fprintf(&b, "\n/* === Inline Style #%d === */\n", s.Index)
		}
		for _, rule := range s.Rules {
			b.WriteString(rule)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

//go:embed analysis.md.tmpl
var analysisSource string

var analysisTemplate = template.Must(template.New("analysis").Funcs(template.FuncMap{
	"truncate": truncate,
}).Parse(analysisSource))

type cssVar struct {
	Name, Value string
}

type analysisData struct {
	Report     *models.ExtractionReport
	Hex        []string
	Variables  []cssVar
	Fonts      []string
	Typography []models.TypographySample
	Generated  string
}

// AnalysisReport renders ANALYSIS_REPORT.md for report.
func AnalysisReport(report *models.ExtractionReport, now time.Time) (string, error) {
	design := report.DesignSystem
	names := make([]string, 0, len(design.CSSVariables))
	for name := range design.CSSVariables {
		names = append(names, name)
	}
	slices.Sort(names)
	vars := make([]cssVar, 0, min(len(names), 30))
	for _, name := range names[:min(len(names), 30)] {
		vars = append(vars, cssVar{Name: name, Value: design.CSSVariables[name]})
	}

	d := analysisData{
		Report:     report,
		Hex:        design.Colors.Hex[:min(len(design.Colors.Hex), 20)],
		Variables:  vars,
		Fonts:      design.Fonts[:min(len(design.Fonts), 10)],
		Typography: design.Typography[:min(len(design.Typography), 15)],
		Generated:  now.Format("2006-01-02 15:04:05"),
	}
	var buf bytes.Buffer
	if err := analysisTemplate.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("render analysis report: %w", err)
	}
	return buf.String(), nil
}

func truncate(n int, s string) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func nonNilMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

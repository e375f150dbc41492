package capture

import (
	"context"
	"fmt"

	"github.com/use-agent/siteclone/models"
)

// maxMediaQueries bounds the @media blocks kept in the page data.
const maxMediaQueries = 50

// extractPageData reads the rendered DOM and computed styles. When the
// full extraction fails the serialized HTML alone is kept so the clone
// still has a document.
func (o *Orchestrator) extractPageData(ctx context.Context) (models.PageData, error) {
	var data models.PageData
	err := evalInto(ctx, o.page, &data, pageDataScript, layoutSelectors, maxMediaQueries)
	if err == nil {
		o.logger.Info("page data extracted",
			"keyframes", len(data.Keyframes),
			"media_queries", len(data.MediaQueries),
			"videos", len(data.Videos),
		)
		return data, nil
	}

	o.logger.Warn("page data extraction failed, keeping HTML only", "error", err)
	html, herr := o.page.HTML(ctx)
	if herr != nil {
		return data, fmt.Errorf("page data: %w (html fallback: %v)", err, herr)
	}
	data.HTML = html
	return data, nil
}

// extractStylesheets reads every stylesheet. Sheets the page could not
// read are downloaded again from Go.
func (o *Orchestrator) extractStylesheets(ctx context.Context) ([]models.StylesheetContent, error) {
	var sheets []models.StylesheetContent
	if err := evalInto(ctx, o.page, &sheets, stylesheetsScript); err != nil {
		return nil, fmt.Errorf("read stylesheets: %w", err)
	}
	o.refetch(ctx, sheets)

	var missing int
	for _, s := range sheets {
		if len(s.Rules) == 0 && s.Href != "" {
			missing++
		}
	}
	o.logger.Info("stylesheets extracted", "count", len(sheets), "unreadable", missing)
	return sheets, nil
}

func (o *Orchestrator) refetch(ctx context.Context, sheets []models.StylesheetContent) {
	if o.fetcher == nil {
		return
	}
	for i := range sheets {
		s := &sheets[i]
		if s.Inline || s.Href == "" || len(s.Rules) > 0 {
			continue
		}
		css, err := o.fetcher.Fetch(ctx, s.Href)
		if err != nil {
			o.logger.Warn("stylesheet refetch failed", "href", s.Href, "error", err)
			if s.Error == "" {
				s.Error = err.Error()
			}
			continue
		}
		s.Rules = []string{css}
		s.Fetched = true
		s.FetchedBy = "go"
		s.Error = ""
	}
}

func (o *Orchestrator) componentTree(ctx context.Context) (*models.ComponentNode, error) {
	var tree *models.ComponentNode
	if err := evalInto(ctx, o.page, &tree, componentTreeScript, o.cfg.ComponentDepth); err != nil {
		return nil, fmt.Errorf("component tree: %w", err)
	}
	if tree != nil {
		LimitDepth(tree, o.cfg.ComponentDepth)
	}
	return tree, nil
}

// LimitDepth drops every node deeper than maxDepth. The root is at depth 0.
func LimitDepth(n *models.ComponentNode, maxDepth int) {
	if maxDepth <= 0 {
		n.Children = n.Children[:0]
		return
	}
	for i := range n.Children {
		LimitDepth(&n.Children[i], maxDepth-1)
	}
}

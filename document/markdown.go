package document

import (
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// Converter renders page HTML as Markdown. It is safe for concurrent use.
type Converter struct {
	conv *converter.Converter
}

// NewConverter builds a converter that drops script, style and head noise
// and keeps tables.
func NewConverter() *Converter {
	return &Converter{conv: converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(
				table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
			),
		),
	)}
}

// Markdown converts rawHTML, resolving relative links against sourceURL.
func (c *Converter) Markdown(rawHTML, sourceURL string) (string, error) {
	return c.conv.ConvertString(rawHTML, converter.WithDomain(sourceURL))
}

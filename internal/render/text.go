package render

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"

	"manview/internal/domain"
)

var blankRuns = regexp.MustCompile(`\n(?:[ \t]*\n){2,}`)

// TextConverter turns rendered pages into terminal text.
type TextConverter struct {
	conv *converter.Converter
}

func NewTextConverter() *TextConverter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &TextConverter{conv: conv}
}

// Text returns Markdown for HTML pages and the raw text for
// preformatted ones.
func (c *TextConverter) Text(page domain.Page) (string, error) {
	if page.Format == domain.FormatPreformatted {
		return page.Raw, nil
	}
	body, err := cleanHTML(page.Content)
	if err != nil {
		return "", err
	}
	md, err := c.conv.ConvertString(body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(blankRuns.ReplaceAllString(md, "\n\n")), nil
}

// Title returns the document title of an HTML page, or the page name.
func Title(page domain.Page) string {
	if page.Format != domain.FormatHTML {
		return page.Name
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Content))
	if err != nil {
		return page.Name
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return page.Name
}

// cleanHTML drops the document head and groff's table of contents (the
// in-page anchor links and the rule that follows them) and returns the
// body markup.
func cleanHTML(raw string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", err
	}
	doc.Find("head, style, script, hr").Remove()
	doc.Find(`a[href^="#"]`).Remove()
	body, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}
	return body, nil
}

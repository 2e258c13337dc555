// Package extract converts HTML payloads into the plain text the capability
// engines consume. Markup, scripts and styles are stripped; block boundaries
// become whitespace so sentences stay separated.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	apperrors "polycap/internal/app/errors"
)

// Text strips markup from an HTML document and returns its readable text.
// Script, style and other non-content tags are removed before extraction.
func Text(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", apperrors.Wrap(apperrors.ErrEmptyInput, "extract html")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", apperrors.Wrap(err, "parse html")
	}

	doc.Find("script, style, noscript, iframe, head").Remove()

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		// fragments without a body still carry text at the document level
		text = doc.Text()
	}

	return collapseWhitespace(text), nil
}

// Title returns the document title, or the first h1 when no title tag exists.
func Title(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", apperrors.Wrap(err, "parse html")
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	return title, nil
}

// collapseWhitespace folds runs of whitespace into single spaces while keeping
// paragraph breaks as newlines.
func collapseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

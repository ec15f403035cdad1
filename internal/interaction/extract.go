// Package interaction records one analytics fact per analysis: who asked and
// which product type the model declared.
package interaction

import (
	"regexp"
	"strings"
)

// Extractor pulls the declared product type out of an analysis text.
type Extractor interface {
	// ProductType returns the product type and whether one was found.
	ProductType(analysis string) (string, bool)
}

var (
	productTypePattern = regexp.MustCompile(`(?i)<b>\s*Product type\s*:\s*</b>\s*(.+)`)
	htmlTagPattern     = regexp.MustCompile(`<[^>]+>`)
)

// PatternExtractor matches the first "<b>Product type:</b> ..." line.
type PatternExtractor struct {
	pattern *regexp.Regexp
}

// NewProductTypeExtractor returns the extractor for the model's three-section format.
func NewProductTypeExtractor() *PatternExtractor {
	return &PatternExtractor{pattern: productTypePattern}
}

// ProductType returns the rest of the first product type line with HTML tags stripped.
func (e *PatternExtractor) ProductType(analysis string) (string, bool) {
	m := e.pattern.FindStringSubmatch(analysis)
	if m == nil {
		return "", false
	}
	clean := strings.TrimSpace(htmlTagPattern.ReplaceAllString(m[1], ""))
	if clean == "" {
		return "", false
	}
	return clean, true
}

var _ Extractor = (*PatternExtractor)(nil)

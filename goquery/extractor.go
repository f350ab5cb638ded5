// Package goquery implements content extraction from marketing email
// HTML. It distinguishes message content from chrome (logos, social
// icons, tracking pixels, footers) by combining weak signals: DOM
// position, CSS class lineage, pixel dimensions, keyword tables and
// inline style. No single signal is authoritative.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mailpress"
)

// maxAncestorDepth bounds class-lineage walks up the parent chain.
const maxAncestorDepth = 5

// Ensure Extractor implements mailpress.ContentExtractor at compile time.
var _ mailpress.ContentExtractor = (*Extractor)(nil)

// Extractor distills campaign HTML into structured content. It is
// stateless apart from its rule tables and safe for concurrent use.
type Extractor struct {
	rules *Rules
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRules overrides the default rule tables.
func WithRules(rules *Rules) Option {
	return func(e *Extractor) {
		if rules != nil {
			e.rules = rules
		}
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{rules: DefaultRules()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses the HTML body and returns the structured content. The
// four sub-extractors (text blocks, images, CTA, embedded links) run
// independently over the same parsed document. A document without
// headings, images or buttons is not an error; the corresponding fields
// come back empty.
func (e *Extractor) Extract(html, title string) (*mailpress.StructuredContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, mailpress.Errorf(mailpress.EINVALID, "failed to parse HTML: %v", err)
	}

	return &mailpress.StructuredContent{
		Title:  title,
		Blocks: e.extractBlocks(doc),
		Images: e.extractImages(doc),
		CTA:    e.detectCTA(doc),
		Links:  e.extractLinks(doc),
	}, nil
}

package mock

import "github.com/fwojciec/mailpress"

var _ mailpress.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of mailpress.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html, title string) (*mailpress.StructuredContent, error)
}

func (e *ContentExtractor) Extract(html, title string) (*mailpress.StructuredContent, error) {
	return e.ExtractFn(html, title)
}

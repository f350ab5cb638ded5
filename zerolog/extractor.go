package zerolog

import (
	"time"

	"github.com/fwojciec/mailpress"
	"github.com/rs/zerolog"
)

// Ensure LoggingContentExtractor implements mailpress.ContentExtractor.
var _ mailpress.ContentExtractor = (*LoggingContentExtractor)(nil)

// LoggingContentExtractor wraps a ContentExtractor with logging of what
// each extraction yielded.
type LoggingContentExtractor struct {
	next   mailpress.ContentExtractor
	logger zerolog.Logger
}

// NewLoggingContentExtractor creates a new LoggingContentExtractor.
func NewLoggingContentExtractor(next mailpress.ContentExtractor, logger zerolog.Logger) *LoggingContentExtractor {
	return &LoggingContentExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingContentExtractor) Extract(html, title string) (content *mailpress.StructuredContent, err error) {
	defer func(begin time.Time) {
		blocks, images, links := 0, 0, 0
		hasCTA := false
		if content != nil {
			blocks = len(content.Blocks)
			images = len(content.Images)
			links = len(content.Links)
			hasCTA = content.CTA != nil
		}
		e.logger.Info().
			Err(err).
			Str("title", title).
			Int("blocks", blocks).
			Int("images", images).
			Int("links", links).
			Bool("cta", hasCTA).
			Dur("duration", time.Since(begin)).
			Msg("content extraction")
	}(time.Now())
	return e.next.Extract(html, title)
}

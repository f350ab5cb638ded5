package zerolog

import (
	"context"
	"time"

	"github.com/fwojciec/mailpress"
	"github.com/rs/zerolog"
)

// Ensure LoggingMediaService implements mailpress.MediaService.
var _ mailpress.MediaService = (*LoggingMediaService)(nil)

// LoggingMediaService wraps a MediaService with upload logging.
type LoggingMediaService struct {
	next   mailpress.MediaService
	logger zerolog.Logger
}

// NewLoggingMediaService creates a new LoggingMediaService.
func NewLoggingMediaService(next mailpress.MediaService, logger zerolog.Logger) *LoggingMediaService {
	return &LoggingMediaService{next: next, logger: logger}
}

// UploadMedia delegates to the wrapped service and logs the operation.
func (s *LoggingMediaService) UploadMedia(ctx context.Context, upload *mailpress.MediaUpload) (media *mailpress.Media, err error) {
	defer func(begin time.Time) {
		id := 0
		if media != nil {
			id = media.ID
		}
		s.logger.Info().
			Err(err).
			Str("filename", upload.Filename).
			Int("bytes", len(upload.Data)).
			Int("media_id", id).
			Dur("duration", time.Since(begin)).
			Msg("media upload")
	}(time.Now())
	return s.next.UploadMedia(ctx, upload)
}

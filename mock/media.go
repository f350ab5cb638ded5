package mock

import (
	"context"

	"github.com/fwojciec/mailpress"
)

var _ mailpress.MediaService = (*MediaService)(nil)

// MediaService is a mock implementation of mailpress.MediaService.
type MediaService struct {
	UploadMediaFn func(ctx context.Context, upload *mailpress.MediaUpload) (*mailpress.Media, error)
}

func (s *MediaService) UploadMedia(ctx context.Context, upload *mailpress.MediaUpload) (*mailpress.Media, error) {
	return s.UploadMediaFn(ctx, upload)
}

package mock

import (
	"context"

	"github.com/fwojciec/mailpress"
)

var _ mailpress.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher is a mock implementation of mailpress.ImageFetcher.
type ImageFetcher struct {
	FetchImageFn func(ctx context.Context, url string) ([]byte, string, error)
}

func (f *ImageFetcher) FetchImage(ctx context.Context, url string) ([]byte, string, error) {
	return f.FetchImageFn(ctx, url)
}

package publish

import (
	"context"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/fwojciec/mailpress"
	"github.com/kennygrant/sanitize"
	"golang.org/x/sync/errgroup"
)

// uploadImages copies content images into the CMS media library. Images
// transfer concurrently; one that cannot be fetched or uploaded is logged
// and skipped so a dead link does not lose the campaign. The result
// follows the content order.
func (p *Publisher) uploadImages(ctx context.Context, images []mailpress.ContentImage) []mailpress.UploadedImage {
	if len(images) == 0 {
		return nil
	}

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	delays := p.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	results := make([]*mailpress.UploadedImage, len(images))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, img := range images {
		g.Go(func() error {
			uploaded, err := p.uploadImage(gctx, img, delays)
			if err != nil {
				p.Logger.Warn().
					Err(err).
					Str("url", img.URL).
					Msg("image skipped")
				return nil
			}
			results[i] = uploaded
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	uploaded := make([]mailpress.UploadedImage, 0, len(images))
	for _, u := range results {
		if u != nil {
			uploaded = append(uploaded, *u)
		}
	}
	return uploaded
}

func (p *Publisher) uploadImage(ctx context.Context, img mailpress.ContentImage, delays []time.Duration) (*mailpress.UploadedImage, error) {
	logf := func(format string, args ...any) {
		p.Logger.Debug().Str("url", img.URL).Msgf(format, args...)
	}
	data, contentType, err := FetchWithRetryDelays(ctx, img.URL, p.Images.FetchImage, logf, delays)
	if err != nil {
		return nil, err
	}

	filename := FilenameFromURL(img.URL)
	if !strings.HasPrefix(contentType, "image/") {
		contentType = ContentTypeFromFilename(filename)
	}

	media, err := p.Media.UploadMedia(ctx, &mailpress.MediaUpload{
		Filename:    filename,
		ContentType: contentType,
		AltText:     img.Alt,
		Data:        data,
	})
	if err != nil {
		return nil, err
	}

	return &mailpress.UploadedImage{
		MediaID:   media.ID,
		URL:       media.URL,
		Alt:       img.Alt,
		SourceURL: img.URL,
	}, nil
}

// FilenameFromURL derives a media filename from the final path segment of
// an image URL, sanitized for the CMS. Query strings are dropped. URLs
// without a usable basename fall back to a generic name.
func FilenameFromURL(rawURL string) string {
	const fallback = "campaign-image.jpg"

	u, err := url.Parse(rawURL)
	if err != nil {
		return fallback
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" {
		return fallback
	}
	name := sanitize.Name(base)
	if name == "" || name == "." {
		return fallback
	}
	return name
}

// ContentTypeFromFilename guesses an image MIME type from the filename
// extension. JPEG is the fallback for unknown extensions.
func ContentTypeFromFilename(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

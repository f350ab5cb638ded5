package zerolog_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/mailpress"
	"github.com/fwojciec/mailpress/mock"
	mailzerolog "github.com/fwojciec/mailpress/zerolog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMediaService_UploadMedia(t *testing.T) {
	t.Parallel()

	t.Run("logs upload with filename and media id", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := zerolog.New(&buf)
		inner := &mock.MediaService{
			UploadMediaFn: func(ctx context.Context, upload *mailpress.MediaUpload) (*mailpress.Media, error) {
				return &mailpress.Media{ID: 42, URL: "https://blog.example.com/media/hero.jpg"}, nil
			},
		}

		svc := mailzerolog.NewLoggingMediaService(inner, logger)
		media, err := svc.UploadMedia(context.Background(), &mailpress.MediaUpload{
			Filename: "hero.jpg",
			Data:     []byte("fake image bytes"),
		})

		require.NoError(t, err)
		assert.Equal(t, 42, media.ID)
		output := buf.String()
		assert.Contains(t, output, `"message":"media upload"`)
		assert.Contains(t, output, `"filename":"hero.jpg"`)
		assert.Contains(t, output, `"bytes":16`)
		assert.Contains(t, output, `"media_id":42`)
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := zerolog.New(&buf)
		inner := &mock.MediaService{
			UploadMediaFn: func(ctx context.Context, upload *mailpress.MediaUpload) (*mailpress.Media, error) {
				return nil, errors.New("wordpress returned HTTP 500")
			},
		}

		svc := mailzerolog.NewLoggingMediaService(inner, logger)
		_, err := svc.UploadMedia(context.Background(), &mailpress.MediaUpload{
			Filename: "hero.jpg",
			Data:     []byte("fake image bytes"),
		})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, `"message":"media upload"`)
		assert.Contains(t, output, `"error":"wordpress returned HTTP 500"`)
		assert.Contains(t, output, `"media_id":0`)
	})
}

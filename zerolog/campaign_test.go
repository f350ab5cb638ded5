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

func TestLoggingCampaignService_FetchCampaign(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with size and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := zerolog.New(&buf)
		inner := &mock.CampaignService{
			FetchCampaignFn: func(ctx context.Context, id string) (*mailpress.Campaign, error) {
				return &mailpress.Campaign{ID: id, Title: "Spring Launch", HTML: "<p>Hello</p>"}, nil
			},
		}

		svc := mailzerolog.NewLoggingCampaignService(inner, logger)
		campaign, err := svc.FetchCampaign(context.Background(), "abc123")

		require.NoError(t, err)
		assert.Equal(t, "Spring Launch", campaign.Title)
		output := buf.String()
		assert.Contains(t, output, `"message":"campaign fetch"`)
		assert.Contains(t, output, `"campaign_id":"abc123"`)
		assert.Contains(t, output, `"html_bytes":12`)
		assert.Contains(t, output, `"duration":`)
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := zerolog.New(&buf)
		inner := &mock.CampaignService{
			FetchCampaignFn: func(ctx context.Context, id string) (*mailpress.Campaign, error) {
				return nil, errors.New("connection failed")
			},
		}

		svc := mailzerolog.NewLoggingCampaignService(inner, logger)
		_, err := svc.FetchCampaign(context.Background(), "abc123")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, `"message":"campaign fetch"`)
		assert.Contains(t, output, `"error":"connection failed"`)
		assert.Contains(t, output, `"html_bytes":0`)
	})
}

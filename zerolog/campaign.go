package zerolog

import (
	"context"
	"time"

	"github.com/fwojciec/mailpress"
	"github.com/rs/zerolog"
)

// Ensure LoggingCampaignService implements mailpress.CampaignService.
var _ mailpress.CampaignService = (*LoggingCampaignService)(nil)

// LoggingCampaignService wraps a CampaignService with request logging.
type LoggingCampaignService struct {
	next   mailpress.CampaignService
	logger zerolog.Logger
}

// NewLoggingCampaignService creates a new LoggingCampaignService.
func NewLoggingCampaignService(next mailpress.CampaignService, logger zerolog.Logger) *LoggingCampaignService {
	return &LoggingCampaignService{next: next, logger: logger}
}

// FetchCampaign delegates to the wrapped service and logs the operation.
func (s *LoggingCampaignService) FetchCampaign(ctx context.Context, id string) (campaign *mailpress.Campaign, err error) {
	defer func(begin time.Time) {
		size := 0
		if campaign != nil {
			size = len(campaign.HTML)
		}
		s.logger.Info().
			Err(err).
			Str("campaign_id", id).
			Int("html_bytes", size).
			Dur("duration", time.Since(begin)).
			Msg("campaign fetch")
	}(time.Now())
	return s.next.FetchCampaign(ctx, id)
}

package mock

import (
	"context"

	"github.com/fwojciec/mailpress"
)

var _ mailpress.CampaignPublisher = (*CampaignPublisher)(nil)

// CampaignPublisher is a mock implementation of mailpress.CampaignPublisher.
type CampaignPublisher struct {
	PublishCampaignFn func(ctx context.Context, campaignID string) (*mailpress.Delivery, error)
}

func (p *CampaignPublisher) PublishCampaign(ctx context.Context, campaignID string) (*mailpress.Delivery, error) {
	return p.PublishCampaignFn(ctx, campaignID)
}

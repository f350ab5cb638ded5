package mock

import (
	"context"

	"github.com/fwojciec/mailpress"
)

var _ mailpress.CampaignService = (*CampaignService)(nil)

// CampaignService is a mock implementation of mailpress.CampaignService.
type CampaignService struct {
	FetchCampaignFn func(ctx context.Context, id string) (*mailpress.Campaign, error)
}

func (s *CampaignService) FetchCampaign(ctx context.Context, id string) (*mailpress.Campaign, error) {
	return s.FetchCampaignFn(ctx, id)
}

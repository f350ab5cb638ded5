// Package publish orchestrates the relay pipeline: fetching a campaign,
// extracting its content, copying images into the CMS media library and
// creating a draft post, with every attempt recorded in the delivery log.
package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/mailpress"
	"github.com/rs/zerolog"
)

// DefaultConcurrency is the number of parallel image transfers.
const DefaultConcurrency = 4

var _ mailpress.CampaignPublisher = (*Publisher)(nil)

// Publisher implements mailpress.CampaignPublisher. The interface fields
// must all be set before use.
type Publisher struct {
	Campaigns  mailpress.CampaignService
	Extractor  mailpress.ContentExtractor
	Images     mailpress.ImageFetcher
	Media      mailpress.MediaService
	Posts      mailpress.PostService
	Composer   mailpress.DraftComposer
	Deliveries mailpress.DeliveryService

	// Concurrency bounds parallel image transfers. Zero means
	// DefaultConcurrency.
	Concurrency int

	// RetryDelays is the backoff schedule for image fetches. Nil means
	// DefaultRetryDelays.
	RetryDelays []time.Duration

	Logger zerolog.Logger
}

// PublishCampaign runs the pipeline for one campaign. A campaign whose
// HTML has already been published is recorded as a skipped delivery
// instead of being posted twice. Pipeline failures are recorded on the
// delivery before the error is returned.
func (p *Publisher) PublishCampaign(ctx context.Context, campaignID string) (*mailpress.Delivery, error) {
	if campaignID == "" {
		return nil, mailpress.Errorf(mailpress.EINVALID, "Campaign id required.")
	}

	campaign, err := p.Campaigns.FetchCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	hash := ContentHash(campaign.HTML)

	published := mailpress.DeliveryPublished
	existing, err := p.Deliveries.FindDeliveries(ctx, mailpress.DeliveryFilter{
		CampaignID:  &campaignID,
		ContentHash: &hash,
		Status:      &published,
		Limit:       1,
	})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		delivery := &mailpress.Delivery{
			CampaignID:    campaignID,
			CampaignTitle: campaign.Title,
			ContentHash:   hash,
			Status:        mailpress.DeliverySkipped,
		}
		if err := p.Deliveries.CreateDelivery(ctx, delivery); err != nil {
			return nil, err
		}
		p.Logger.Info().
			Str("campaign_id", campaignID).
			Str("content_hash", hash).
			Msg("campaign already published, skipping")
		return delivery, nil
	}

	delivery := &mailpress.Delivery{
		CampaignID:    campaignID,
		CampaignTitle: campaign.Title,
		ContentHash:   hash,
		Status:        mailpress.DeliveryPending,
	}
	if err := p.Deliveries.CreateDelivery(ctx, delivery); err != nil {
		return nil, err
	}

	content, err := p.Extractor.Extract(campaign.HTML, campaign.Title)
	if err != nil {
		return p.fail(ctx, delivery, err)
	}

	uploaded := p.uploadImages(ctx, content.Images)

	draft, err := p.Composer.ComposeDraft(content, uploaded)
	if err != nil {
		return p.fail(ctx, delivery, err)
	}
	post, err := p.Posts.CreateDraft(ctx, draft)
	if err != nil {
		return p.fail(ctx, delivery, err)
	}

	status := mailpress.DeliveryPublished
	imagesUploaded := len(uploaded)
	updated, err := p.Deliveries.UpdateDelivery(ctx, delivery.ID, mailpress.DeliveryUpdate{
		Status:         &status,
		PostID:         &post.ID,
		PostURL:        &post.URL,
		ImagesUploaded: &imagesUploaded,
	})
	if err != nil {
		return nil, err
	}

	p.Logger.Info().
		Str("campaign_id", campaignID).
		Int("post_id", post.ID).
		Str("post_url", post.URL).
		Int("images_uploaded", imagesUploaded).
		Msg("campaign published")
	return updated, nil
}

// PreviewCampaign fetches a campaign and returns its extracted content
// without uploading images or writing anything to the CMS.
func (p *Publisher) PreviewCampaign(ctx context.Context, campaignID string) (*mailpress.StructuredContent, error) {
	if campaignID == "" {
		return nil, mailpress.Errorf(mailpress.EINVALID, "Campaign id required.")
	}
	campaign, err := p.Campaigns.FetchCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	return p.Extractor.Extract(campaign.HTML, campaign.Title)
}

// fail marks the delivery failed and returns the pipeline error.
func (p *Publisher) fail(ctx context.Context, delivery *mailpress.Delivery, err error) (*mailpress.Delivery, error) {
	status := mailpress.DeliveryFailed
	msg := err.Error()
	if _, uerr := p.Deliveries.UpdateDelivery(ctx, delivery.ID, mailpress.DeliveryUpdate{
		Status: &status,
		Error:  &msg,
	}); uerr != nil {
		p.Logger.Error().
			Err(uerr).
			Str("delivery_id", delivery.ID).
			Msg("failed to record delivery failure")
	}
	return nil, err
}

// ContentHash returns the idempotency key for a campaign's HTML body.
func ContentHash(html string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(html))
}

package mailpress

import (
	"context"
	"time"
)

// DeliveryStatus describes where a campaign delivery is in its lifecycle.
type DeliveryStatus string

// DeliveryStatus values.
const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryPublished DeliveryStatus = "published"
	DeliveryFailed    DeliveryStatus = "failed"
	DeliverySkipped   DeliveryStatus = "skipped"
)

// Delivery records one attempt to relay a campaign into the CMS. The
// content hash makes webhook retries idempotent: a campaign whose HTML
// has already been published is skipped rather than posted twice.
type Delivery struct {
	ID             string         `json:"id"`
	CampaignID     string         `json:"campaignId"`
	CampaignTitle  string         `json:"campaignTitle"`
	ContentHash    string         `json:"contentHash"`
	PostID         int            `json:"postId"`
	PostURL        string         `json:"postUrl"`
	Status         DeliveryStatus `json:"status"`
	Error          string         `json:"error"`
	ImagesUploaded int            `json:"imagesUploaded"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Validate returns an error if the delivery contains invalid fields.
func (d *Delivery) Validate() error {
	if d.CampaignID == "" {
		return Errorf(EINVALID, "delivery campaign ID required")
	}
	switch d.Status {
	case DeliveryPending, DeliveryPublished, DeliveryFailed, DeliverySkipped:
	default:
		return Errorf(EINVALID, "invalid delivery status %q", d.Status)
	}
	return nil
}

// CampaignPublisher runs the relay pipeline for one campaign: fetch,
// extract, copy images into the CMS, create a draft post. Every attempt
// is recorded in the delivery log, including failed ones.
type CampaignPublisher interface {
	PublishCampaign(ctx context.Context, campaignID string) (*Delivery, error)
}

// DeliveryService represents a service for managing deliveries.
type DeliveryService interface {
	// CreateDelivery creates a new delivery record.
	CreateDelivery(ctx context.Context, delivery *Delivery) error

	// FindDeliveryByID retrieves a delivery by ID.
	// Returns ENOTFOUND if the delivery does not exist.
	FindDeliveryByID(ctx context.Context, id string) (*Delivery, error)

	// FindDeliveries retrieves deliveries matching the filter,
	// newest first.
	FindDeliveries(ctx context.Context, filter DeliveryFilter) ([]*Delivery, error)

	// UpdateDelivery updates an existing delivery.
	// Returns ENOTFOUND if the delivery does not exist.
	UpdateDelivery(ctx context.Context, id string, upd DeliveryUpdate) (*Delivery, error)
}

// DeliveryFilter represents a filter for FindDeliveries.
type DeliveryFilter struct {
	ID          *string         `json:"id"`
	CampaignID  *string         `json:"campaignId"`
	ContentHash *string         `json:"contentHash"`
	Status      *DeliveryStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// DeliveryUpdate represents fields that can be updated on a delivery.
type DeliveryUpdate struct {
	Status         *DeliveryStatus `json:"status"`
	PostID         *int            `json:"postId"`
	PostURL        *string         `json:"postUrl"`
	Error          *string         `json:"error"`
	ImagesUploaded *int            `json:"imagesUploaded"`
}

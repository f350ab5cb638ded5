package mailpress

import "context"

// Campaign is a sent email campaign as reported by the vendor API.
type Campaign struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	HTML       string `json:"html"`
	ArchiveURL string `json:"archiveUrl"`
}

// Validate returns an error if the campaign contains invalid fields.
func (c *Campaign) Validate() error {
	if c.ID == "" {
		return Errorf(EINVALID, "campaign ID required")
	}
	if c.HTML == "" {
		return Errorf(EINVALID, "campaign HTML required")
	}
	return nil
}

// CampaignService retrieves campaigns from the email vendor.
type CampaignService interface {
	// FetchCampaign retrieves a campaign's rendered HTML together with
	// its subject line and archive URL.
	// Returns ENOTFOUND if the campaign does not exist.
	FetchCampaign(ctx context.Context, id string) (*Campaign, error)
}

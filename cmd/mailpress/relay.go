package main

import (
	"fmt"

	"github.com/fwojciec/mailpress"
)

// Run executes the relay command.
func (c *RelayCmd) Run(deps *Dependencies) error {
	delivery, err := deps.Publisher.PublishCampaign(deps.Ctx, c.CampaignID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailpress.ErrorMessage(err))
		return err
	}

	if delivery.Status == mailpress.DeliverySkipped {
		fmt.Fprintf(deps.Stdout, "Campaign %q already published, skipped\n", c.CampaignID)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Created draft %d (%s), %d images uploaded\n",
		delivery.PostID, delivery.PostURL, delivery.ImagesUploaded)

	return nil
}

package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/mailpress"
)

// Run executes the deliveries command.
func (c *DeliveriesCmd) Run(deps *Dependencies) error {
	filter := mailpress.DeliveryFilter{Limit: c.Limit}
	if c.Campaign != "" {
		filter.CampaignID = &c.Campaign
	}
	if c.Status != "" {
		status := mailpress.DeliveryStatus(c.Status)
		switch status {
		case mailpress.DeliveryPending, mailpress.DeliveryPublished, mailpress.DeliveryFailed, mailpress.DeliverySkipped:
		default:
			err := mailpress.Errorf(mailpress.EINVALID, "Unknown status %q.", c.Status)
			fmt.Fprintf(deps.Stderr, "error: %s\n", mailpress.ErrorMessage(err))
			return err
		}
		filter.Status = &status
	}

	deliveries, err := deps.Deliveries.FindDeliveries(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailpress.ErrorMessage(err))
		return err
	}

	if len(deliveries) == 0 {
		fmt.Fprintln(deps.Stdout, "No deliveries recorded.")
		return nil
	}

	for _, d := range deliveries {
		fmt.Fprintf(deps.Stdout, "%s  %-9s  %s  %s\n",
			d.CreatedAt.Format(time.RFC3339), d.Status, d.CampaignID, deliveryDetail(d))
	}

	return nil
}

// deliveryDetail picks the most useful trailing column for a delivery row.
func deliveryDetail(d *mailpress.Delivery) string {
	switch d.Status {
	case mailpress.DeliveryPublished:
		return d.PostURL
	case mailpress.DeliveryFailed:
		return d.Error
	default:
		return d.CampaignTitle
	}
}

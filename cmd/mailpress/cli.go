package main

import (
	"context"
	"io"

	"github.com/fwojciec/mailpress"
	"github.com/fwojciec/mailpress/publish"
	"github.com/fwojciec/mailpress/sqlite"
	"github.com/rs/zerolog"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     zerolog.Logger
	DB         *sqlite.DB
	Deliveries mailpress.DeliveryService
	Campaigns  mailpress.CampaignService
	Extractor  mailpress.ContentExtractor
	Converter  mailpress.Converter
	Publisher  *publish.Publisher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Rules string `help:"YAML file overriding the extraction rules" type:"existingfile" env:"MAILPRESS_RULES"`

	Serve      ServeCmd      `cmd:"" help:"Run the campaign webhook server"`
	Relay      RelayCmd      `cmd:"" help:"Relay a single campaign into the CMS"`
	Preview    PreviewCmd    `cmd:"" help:"Show the content extracted from a campaign"`
	Deliveries DeliveriesCmd `cmd:"" help:"List recorded deliveries"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" env:"MAILPRESS_ADDR" help:"HTTP listen address"`
	Mode string `default:"meta" enum:"meta,blocks" help:"How drafts carry content: meta fields or block markup"`
}

// RelayCmd is the "relay" subcommand.
type RelayCmd struct {
	CampaignID string `arg:"" help:"Mailchimp campaign id"`
	Mode       string `default:"meta" enum:"meta,blocks" help:"How drafts carry content: meta fields or block markup"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	CampaignID string `arg:"" optional:"" help:"Mailchimp campaign id"`
	File       string `short:"f" type:"existingfile" help:"Read campaign HTML from a file instead"`
	JSON       bool   `help:"Print the extracted content as JSON instead of Markdown"`
}

// DeliveriesCmd is the "deliveries" subcommand.
type DeliveriesCmd struct {
	Status   string `short:"s" help:"Filter by status (pending, published, failed, skipped)"`
	Campaign string `short:"c" help:"Filter by campaign id"`
	Limit    int    `short:"n" default:"20" help:"Maximum number of deliveries to show"`
}

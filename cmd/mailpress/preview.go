package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/mailpress"
	"github.com/fwojciec/mailpress/wordpress"
)

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	content, err := c.extract(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailpress.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(content)
	}

	markup := wordpress.RenderBlocks(content, nil)
	if markup == "" {
		fmt.Fprintln(deps.Stdout, "(no content extracted)")
		return nil
	}

	markdown, err := deps.Converter.Convert(markup)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailpress.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, markdown)
	return nil
}

// extract resolves the campaign HTML from the file or the Mailchimp API
// and runs it through the extractor.
func (c *PreviewCmd) extract(deps *Dependencies) (*mailpress.StructuredContent, error) {
	if c.File != "" {
		html, err := os.ReadFile(c.File)
		if err != nil {
			return nil, mailpress.Errorf(mailpress.EINVALID, "Unable to read file %q.", c.File)
		}
		title := strings.TrimSuffix(filepath.Base(c.File), filepath.Ext(c.File))
		return deps.Extractor.Extract(string(html), title)
	}

	if c.CampaignID == "" {
		return nil, mailpress.Errorf(mailpress.EINVALID, "Campaign id or --file required.")
	}

	campaign, err := deps.Campaigns.FetchCampaign(deps.Ctx, c.CampaignID)
	if err != nil {
		return nil, err
	}
	return deps.Extractor.Extract(campaign.HTML, campaign.Title)
}

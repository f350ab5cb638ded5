// Package mailchimp provides a Mailchimp-backed implementation of
// mailpress.CampaignService using the v3 REST API.
package mailchimp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/mailpress"
)

// DefaultTimeout is the default timeout for API requests.
const DefaultTimeout = 10 * time.Second

// Ensure Client implements mailpress.CampaignService at compile time.
var _ mailpress.CampaignService = (*Client)(nil)

// Client fetches campaigns from the Mailchimp API. The API host is
// derived from the datacenter suffix of the API key.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API host derived from the key suffix.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithTimeout sets the timeout for API requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a new Client for the given API key. Returns
// EINVALID when the key has no datacenter suffix and no base URL
// override is supplied.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	c := &Client{
		apiKey:  apiKey,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.baseURL == "" {
		dc, err := ParseDataCenter(apiKey)
		if err != nil {
			return nil, err
		}
		c.baseURL = fmt.Sprintf("https://%s.api.mailchimp.com", dc)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}

	return c, nil
}

// ParseDataCenter extracts the datacenter suffix from a Mailchimp API
// key. Keys look like "abc123-us21"; the suffix selects the API host.
func ParseDataCenter(apiKey string) (string, error) {
	parts := strings.Split(apiKey, "-")
	if len(parts) < 2 || parts[1] == "" {
		return "", mailpress.Errorf(mailpress.EINVALID, "Mailchimp API key is missing the datacenter suffix.")
	}
	return parts[1], nil
}

// FetchCampaign retrieves the campaign's rendered HTML and its details
// and merges them into a single Campaign.
func (c *Client) FetchCampaign(ctx context.Context, id string) (*mailpress.Campaign, error) {
	if id == "" {
		return nil, mailpress.Errorf(mailpress.EINVALID, "Campaign id required.")
	}

	var content struct {
		HTML string `json:"html"`
	}
	if err := c.get(ctx, "/3.0/campaigns/"+id+"/content", &content); err != nil {
		return nil, err
	}

	var details struct {
		ArchiveURL     string `json:"archive_url"`
		LongArchiveURL string `json:"long_archive_url"`
		Settings       struct {
			SubjectLine string `json:"subject_line"`
		} `json:"settings"`
	}
	if err := c.get(ctx, "/3.0/campaigns/"+id, &details); err != nil {
		return nil, err
	}

	campaign := &mailpress.Campaign{
		ID:         id,
		Title:      details.Settings.SubjectLine,
		HTML:       content.HTML,
		ArchiveURL: details.ArchiveURL,
	}
	if details.LongArchiveURL != "" {
		campaign.ArchiveURL = details.LongArchiveURL
	}
	if err := campaign.Validate(); err != nil {
		return nil, err
	}

	return campaign, nil
}

// get performs an authenticated GET against the API and decodes the
// JSON response into v. Mailchimp expects basic auth with any username
// and the API key as password.
func (c *Client) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth("anystring", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return mailpress.Errorf(mailpress.EINTERNAL, "mailchimp request failed: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return mailpress.Errorf(mailpress.ENOTFOUND, "Campaign not found.")
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return mailpress.Errorf(mailpress.EUNAUTHORIZED, "Mailchimp rejected the API key.")
	case resp.StatusCode != http.StatusOK:
		return mailpress.Errorf(mailpress.EINTERNAL, "mailchimp returned HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return mailpress.Errorf(mailpress.EINTERNAL, "failed to decode mailchimp response: %v", err)
	}
	return nil
}

// Package wordpress provides WordPress-backed implementations of
// mailpress.MediaService and mailpress.PostService using the REST API
// with application-password authentication.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/fwojciec/mailpress"
	"golang.org/x/time/rate"
)

// DefaultTimeout is the default timeout for API requests. Media uploads
// move image bytes, so it is longer than a plain JSON round trip needs.
const DefaultTimeout = 30 * time.Second

// Ensure Client implements the CMS interfaces at compile time.
var (
	_ mailpress.MediaService = (*Client)(nil)
	_ mailpress.PostService  = (*Client)(nil)
)

// Client talks to a WordPress site's REST API.
type Client struct {
	baseURL  string
	username string
	password string
	client   *http.Client
	timeout  time.Duration
	limiter  *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithTimeout sets the timeout for API requests.
// Defaults to DefaultTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit caps requests per second across uploads and post
// creation. No limiter is installed by default.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a new Client for the site at baseURL.
func NewClient(baseURL, username, password string, opts ...Option) (*Client, error) {
	if baseURL == "" || username == "" || password == "" {
		return nil, mailpress.Errorf(mailpress.EINVALID, "WordPress URL, username and application password required.")
	}

	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}

	return c, nil
}

// UploadMedia uploads the image to the media library via a multipart
// POST and returns the created library item.
func (c *Client) UploadMedia(ctx context.Context, upload *mailpress.MediaUpload) (*mailpress.Media, error) {
	if err := upload.Validate(); err != nil {
		return nil, err
	}
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, upload.Filename))
	header.Set("Content-Type", upload.ContentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, mailpress.Errorf(mailpress.EINTERNAL, "failed to build upload request: %v", err)
	}
	if _, err := part.Write(upload.Data); err != nil {
		return nil, mailpress.Errorf(mailpress.EINTERNAL, "failed to build upload request: %v", err)
	}
	if err := w.WriteField("title", upload.Filename); err != nil {
		return nil, mailpress.Errorf(mailpress.EINTERNAL, "failed to build upload request: %v", err)
	}
	if err := w.WriteField("alt_text", upload.AltText); err != nil {
		return nil, mailpress.Errorf(mailpress.EINTERNAL, "failed to build upload request: %v", err)
	}
	if err := w.Close(); err != nil {
		return nil, mailpress.Errorf(mailpress.EINTERNAL, "failed to build upload request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/wp-json/wp/v2/media", &body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out struct {
		ID        int    `json:"id"`
		SourceURL string `json:"source_url"`
	}
	if err := c.do(req, &out); err != nil {
		return nil, err
	}

	return &mailpress.Media{ID: out.ID, URL: out.SourceURL}, nil
}

// CreateDraft creates a draft post and returns it.
func (c *Client) CreateDraft(ctx context.Context, post *mailpress.DraftPost) (*mailpress.Post, error) {
	if err := post.Validate(); err != nil {
		return nil, err
	}
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	payload := struct {
		Title   string            `json:"title"`
		Status  string            `json:"status"`
		Content string            `json:"content"`
		Meta    map[string]string `json:"meta,omitempty"`
	}{
		Title:   post.Title,
		Status:  "draft",
		Content: post.Content,
		Meta:    post.Meta,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, mailpress.Errorf(mailpress.EINTERNAL, "failed to encode post: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/wp-json/wp/v2/posts", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json")

	var out struct {
		ID     int    `json:"id"`
		Link   string `json:"link"`
		Status string `json:"status"`
	}
	if err := c.do(req, &out); err != nil {
		return nil, err
	}

	return &mailpress.Post{ID: out.ID, URL: out.Link, Status: out.Status}, nil
}

// wait blocks until the rate limiter admits the next request.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// do executes the request and decodes the JSON response into v.
func (c *Client) do(req *http.Request, v any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return mailpress.Errorf(mailpress.EINTERNAL, "wordpress request failed: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return mailpress.Errorf(mailpress.ENOTFOUND, "WordPress endpoint not found.")
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return mailpress.Errorf(mailpress.EUNAUTHORIZED, "WordPress rejected the credentials.")
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		return mailpress.Errorf(mailpress.EINTERNAL, "wordpress returned HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return mailpress.Errorf(mailpress.EINTERNAL, "failed to decode wordpress response: %v", err)
	}
	return nil
}

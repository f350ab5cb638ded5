package mailpress

import "context"

// DraftPost is a post to be created in the CMS. Meta holds custom fields
// stored alongside the post; values are JSON-encoded strings.
type DraftPost struct {
	Title   string            `json:"title"`
	Content string            `json:"content"`
	Meta    map[string]string `json:"meta"`
}

// Validate returns an error if the draft contains invalid fields.
func (p *DraftPost) Validate() error {
	if p.Title == "" {
		return Errorf(EINVALID, "post title required")
	}
	return nil
}

// Post is a post that exists in the CMS.
type Post struct {
	ID     int    `json:"id"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

// PostService creates posts in the CMS.
type PostService interface {
	// CreateDraft creates the post with draft status and returns it.
	CreateDraft(ctx context.Context, draft *DraftPost) (*Post, error)
}

// DraftComposer builds the outbound draft-post payload from extracted
// content and the images uploaded for it.
type DraftComposer interface {
	ComposeDraft(content *StructuredContent, uploaded []UploadedImage) (*DraftPost, error)
}

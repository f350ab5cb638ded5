package mock

import "github.com/fwojciec/mailpress"

var _ mailpress.DraftComposer = (*DraftComposer)(nil)

// DraftComposer is a mock implementation of mailpress.DraftComposer.
type DraftComposer struct {
	ComposeDraftFn func(content *mailpress.StructuredContent, uploaded []mailpress.UploadedImage) (*mailpress.DraftPost, error)
}

func (c *DraftComposer) ComposeDraft(content *mailpress.StructuredContent, uploaded []mailpress.UploadedImage) (*mailpress.DraftPost, error) {
	return c.ComposeDraftFn(content, uploaded)
}

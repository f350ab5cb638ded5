package mock

import (
	"context"

	"github.com/fwojciec/mailpress"
)

var _ mailpress.PostService = (*PostService)(nil)

// PostService is a mock implementation of mailpress.PostService.
type PostService struct {
	CreateDraftFn func(ctx context.Context, post *mailpress.DraftPost) (*mailpress.Post, error)
}

func (s *PostService) CreateDraft(ctx context.Context, post *mailpress.DraftPost) (*mailpress.Post, error) {
	return s.CreateDraftFn(ctx, post)
}

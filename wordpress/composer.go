package wordpress

import (
	"github.com/fwojciec/mailpress"
)

// Mode selects how a draft post carries the extracted content.
type Mode string

const (
	// ModeMeta stores the content as JSON documents in post meta and
	// leaves the post body empty for a theme to render.
	ModeMeta Mode = "meta"

	// ModeBlocks additionally renders the content as block markup in
	// the post body.
	ModeBlocks Mode = "blocks"
)

var _ mailpress.DraftComposer = (*Composer)(nil)

// Composer builds draft posts carrying extracted campaign content. The
// structured content always travels in post meta; in ModeBlocks the post
// body is rendered as block markup as well.
type Composer struct {
	mode Mode
}

// NewComposer returns a Composer for the given mode. An empty mode
// defaults to ModeMeta.
func NewComposer(mode Mode) (*Composer, error) {
	switch mode {
	case "":
		mode = ModeMeta
	case ModeMeta, ModeBlocks:
	default:
		return nil, mailpress.Errorf(mailpress.EINVALID, "unknown post mode %q", mode)
	}
	return &Composer{mode: mode}, nil
}

// ComposeDraft implements mailpress.DraftComposer.
func (c *Composer) ComposeDraft(content *mailpress.StructuredContent, uploaded []mailpress.UploadedImage) (*mailpress.DraftPost, error) {
	meta, err := BuildMeta(content, uploaded)
	if err != nil {
		return nil, err
	}
	draft := &mailpress.DraftPost{
		Title: content.Title,
		Meta:  meta,
	}
	if c.mode == ModeBlocks {
		draft.Content = RenderBlocks(content, uploaded)
	}
	return draft, nil
}

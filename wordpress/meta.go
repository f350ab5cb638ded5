package wordpress

import (
	"encoding/json"

	"github.com/fwojciec/mailpress"
)

// Meta keys read by the newsletter theme. Each value is a JSON document
// stored as a string.
const (
	MetaTextBlocks    = "newsletter_text_blocks"
	MetaImages        = "newsletter_images"
	MetaCTA           = "newsletter_cta"
	MetaEmbeddedLinks = "newsletter_embedded_links"
)

// BuildMeta serializes the structured content into post meta. The CTA
// serializes to the string "null" when absent; the embedded-links key
// is only present when links were found.
func BuildMeta(content *mailpress.StructuredContent, uploaded []mailpress.UploadedImage) (map[string]string, error) {
	blocks := content.Blocks
	if blocks == nil {
		blocks = []mailpress.TextBlock{}
	}
	if uploaded == nil {
		uploaded = []mailpress.UploadedImage{}
	}

	blocksJSON, err := json.Marshal(blocks)
	if err != nil {
		return nil, mailpress.Errorf(mailpress.EINTERNAL, "failed to encode text blocks: %v", err)
	}
	imagesJSON, err := json.Marshal(uploaded)
	if err != nil {
		return nil, mailpress.Errorf(mailpress.EINTERNAL, "failed to encode images: %v", err)
	}
	ctaJSON, err := json.Marshal(content.CTA)
	if err != nil {
		return nil, mailpress.Errorf(mailpress.EINTERNAL, "failed to encode call to action: %v", err)
	}

	meta := map[string]string{
		MetaTextBlocks: string(blocksJSON),
		MetaImages:     string(imagesJSON),
		MetaCTA:        string(ctaJSON),
	}

	if len(content.Links) > 0 {
		linksJSON, err := json.Marshal(content.Links)
		if err != nil {
			return nil, mailpress.Errorf(mailpress.EINTERNAL, "failed to encode embedded links: %v", err)
		}
		meta[MetaEmbeddedLinks] = string(linksJSON)
	}

	return meta, nil
}

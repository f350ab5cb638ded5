package wordpress_test

import (
	"testing"

	"github.com/fwojciec/mailpress"
	"github.com/fwojciec/mailpress/wordpress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMeta(t *testing.T) {
	t.Parallel()

	content := &mailpress.StructuredContent{
		Title: "Weekly Update",
		Blocks: []mailpress.TextBlock{
			mailpress.Header{Level: 1, Text: "Spring Launch"},
			mailpress.Paragraph{Text: "We shipped something new."},
			mailpress.List{Ordered: true, Items: []string{"Faster", "Lighter"}},
		},
		Images: []mailpress.ContentImage{
			{URL: "https://cdn.example.com/hero.jpg", Alt: "Spring lineup"},
		},
		CTA: &mailpress.CallToAction{Text: "Learn More", URL: "https://example.com/launch"},
		Links: []mailpress.EmbeddedLink{
			{Text: "the blog", URL: "https://example.com/blog"},
		},
	}
	uploaded := []mailpress.UploadedImage{
		{
			MediaID:   42,
			URL:       "https://wp.example.com/wp-content/uploads/hero.jpg",
			Alt:       "Spring lineup",
			SourceURL: "https://cdn.example.com/hero.jpg",
		},
	}

	meta, err := wordpress.BuildMeta(content, uploaded)
	require.NoError(t, err)

	assert.JSONEq(t, `[
		{"type":"header","level":1,"content":"Spring Launch"},
		{"type":"paragraph","content":"We shipped something new."},
		{"type":"list","style":"ordered","items":["Faster","Lighter"]}
	]`, meta[wordpress.MetaTextBlocks])

	// The remote source URL is pipeline state, not part of the wire format.
	assert.JSONEq(t, `[
		{"media_id":42,"url":"https://wp.example.com/wp-content/uploads/hero.jpg","alt":"Spring lineup"}
	]`, meta[wordpress.MetaImages])

	assert.JSONEq(t, `{"text":"Learn More","url":"https://example.com/launch"}`, meta[wordpress.MetaCTA])

	assert.JSONEq(t, `[{"text":"the blog","url":"https://example.com/blog"}]`, meta[wordpress.MetaEmbeddedLinks])
}

func TestBuildMeta_EmptyContent(t *testing.T) {
	t.Parallel()

	meta, err := wordpress.BuildMeta(&mailpress.StructuredContent{Title: "Empty"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "[]", meta[wordpress.MetaTextBlocks])
	assert.Equal(t, "[]", meta[wordpress.MetaImages])
	assert.Equal(t, "null", meta[wordpress.MetaCTA])
	assert.NotContains(t, meta, wordpress.MetaEmbeddedLinks)
}

package wordpress

import (
	"fmt"
	"html"
	"strings"

	"github.com/fwojciec/mailpress"
)

// RenderBlocks renders the structured content as Gutenberg block
// markup. The first image leads the post, text blocks follow in order,
// remaining images come after the text and the call to action closes
// the post as a button. Images that were uploaded to the media library
// render with their library URL and attachment id; the rest keep their
// remote URL.
func RenderBlocks(content *mailpress.StructuredContent, uploaded []mailpress.UploadedImage) string {
	bySource := make(map[string]mailpress.UploadedImage, len(uploaded))
	for _, up := range uploaded {
		if _, ok := bySource[up.SourceURL]; !ok {
			bySource[up.SourceURL] = up
		}
	}

	var parts []string

	images := content.Images
	if len(images) > 0 {
		parts = append(parts, renderImage(images[0], bySource))
		images = images[1:]
	}

	for _, block := range content.Blocks {
		switch b := block.(type) {
		case mailpress.Header:
			parts = append(parts, renderHeading(b))
		case mailpress.Paragraph:
			// Merged paragraph runs come apart again as separate blocks.
			for _, text := range strings.Split(b.Text, "\n\n") {
				if text = strings.TrimSpace(text); text != "" {
					parts = append(parts, renderParagraph(text))
				}
			}
		case mailpress.List:
			parts = append(parts, renderList(b))
		}
	}

	for _, img := range images {
		parts = append(parts, renderImage(img, bySource))
	}

	if content.CTA != nil {
		parts = append(parts, renderButton(content.CTA))
	}

	return strings.Join(parts, "\n\n")
}

func renderHeading(h mailpress.Header) string {
	level := h.Level
	if level < 1 || level > 6 {
		level = 2
	}
	attrs := ""
	if level != 2 {
		attrs = fmt.Sprintf(` {"level":%d}`, level)
	}
	return fmt.Sprintf("<!-- wp:heading%s -->\n<h%d class=\"wp-block-heading\">%s</h%d>\n<!-- /wp:heading -->",
		attrs, level, html.EscapeString(h.Text), level)
}

func renderParagraph(text string) string {
	return fmt.Sprintf("<!-- wp:paragraph -->\n<p>%s</p>\n<!-- /wp:paragraph -->", html.EscapeString(text))
}

func renderList(l mailpress.List) string {
	tag, attrs := "ul", ""
	if l.Ordered {
		tag, attrs = "ol", ` {"ordered":true}`
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "<!-- wp:list%s -->\n<%s>", attrs, tag)
	for _, item := range l.Items {
		fmt.Fprintf(&sb, "<li>%s</li>", html.EscapeString(item))
	}
	fmt.Fprintf(&sb, "</%s>\n<!-- /wp:list -->", tag)
	return sb.String()
}

func renderImage(img mailpress.ContentImage, bySource map[string]mailpress.UploadedImage) string {
	if up, ok := bySource[img.URL]; ok {
		return fmt.Sprintf("<!-- wp:image {\"id\":%d} -->\n<figure class=\"wp-block-image\"><img src=\"%s\" alt=\"%s\" class=\"wp-image-%d\"/></figure>\n<!-- /wp:image -->",
			up.MediaID, html.EscapeString(up.URL), html.EscapeString(img.Alt), up.MediaID)
	}
	return fmt.Sprintf("<!-- wp:image -->\n<figure class=\"wp-block-image\"><img src=\"%s\" alt=\"%s\"/></figure>\n<!-- /wp:image -->",
		html.EscapeString(img.URL), html.EscapeString(img.Alt))
}

func renderButton(cta *mailpress.CallToAction) string {
	return fmt.Sprintf("<!-- wp:buttons -->\n<div class=\"wp-block-buttons\"><!-- wp:button -->\n<div class=\"wp-block-button\"><a class=\"wp-block-button__link\" href=\"%s\">%s</a></div>\n<!-- /wp:button --></div>\n<!-- /wp:buttons -->",
		html.EscapeString(cta.URL), html.EscapeString(cta.Text))
}

package mailpress

import "encoding/json"

// TextBlock is a single unit of readable copy extracted from an email
// body. Blocks appear in document order. The concrete types are Header,
// Paragraph and List.
type TextBlock interface {
	textBlock()
}

// Header is a heading block with its level (1 through 6).
type Header struct {
	Level int
	Text  string
}

func (Header) textBlock() {}

// MarshalJSON implements json.Marshaler.
func (h Header) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string `json:"type"`
		Level   int    `json:"level"`
		Content string `json:"content"`
	}{Type: "header", Level: h.Level, Content: h.Text})
}

// Paragraph is a block of body copy. Adjacent paragraphs are merged
// during extraction, so no two Paragraph blocks ever touch.
type Paragraph struct {
	Text string
}

func (Paragraph) textBlock() {}

// MarshalJSON implements json.Marshaler.
func (p Paragraph) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    string `json:"type"`
		Content string `json:"content"`
	}{Type: "paragraph", Content: p.Text})
}

// List is an ordered or unordered list block.
type List struct {
	Ordered bool
	Items   []string
}

func (List) textBlock() {}

// MarshalJSON implements json.Marshaler.
func (l List) MarshalJSON() ([]byte, error) {
	style := "unordered"
	if l.Ordered {
		style = "ordered"
	}
	return json.Marshal(struct {
		Type  string   `json:"type"`
		Style string   `json:"style"`
		Items []string `json:"items"`
	}{Type: "list", Style: style, Items: l.Items})
}

// ContentImage is an image judged to be part of the email's content
// rather than its chrome (logos, social icons, tracking pixels).
type ContentImage struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// CallToAction is the single most prominent action link of a campaign.
type CallToAction struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// EmbeddedLink is a meaningful link found in the email copy. Links are
// de-duplicated by URL, first occurrence wins.
type EmbeddedLink struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// StructuredContent is the presentation-agnostic content model distilled
// from a campaign's HTML body. It is immutable after extraction.
type StructuredContent struct {
	Title  string         `json:"title"`
	Blocks []TextBlock    `json:"text_blocks"`
	Images []ContentImage `json:"images"`
	CTA    *CallToAction  `json:"cta"`
	Links  []EmbeddedLink `json:"embedded_links"`
}

// ContentExtractor distills raw campaign HTML into structured content.
type ContentExtractor interface {
	// Extract parses the HTML body and returns the structured content.
	// The title is carried through to the result unchanged.
	// Returns EINVALID if the HTML cannot be parsed at all. Missing
	// headings, images or buttons are not errors; the corresponding
	// fields are simply empty.
	Extract(html, title string) (*StructuredContent, error)
}

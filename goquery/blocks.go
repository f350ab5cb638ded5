package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mailpress"
	"golang.org/x/net/html"
)

// extractBlocks walks heading, paragraph and list nodes in document
// order and returns a merged block sequence. Nodes nested inside a list
// item are consumed as part of that list, never as separate blocks.
func (e *Extractor) extractBlocks(doc *goquery.Document) []mailpress.TextBlock {
	raw := make([]mailpress.TextBlock, 0)

	doc.Find("h1, h2, h3, h4, h5, h6, p, ul, ol").Each(func(_ int, s *goquery.Selection) {
		if insideListItem(s.Nodes[0]) {
			return
		}

		name := goquery.NodeName(s)
		switch name {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			if text := strings.TrimSpace(s.Text()); text != "" {
				raw = append(raw, mailpress.Header{Level: int(name[1] - '0'), Text: text})
			}
		case "p":
			if text := strings.TrimSpace(s.Text()); text != "" {
				raw = append(raw, mailpress.Paragraph{Text: text})
			}
		case "ul", "ol":
			var items []string
			s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
				if text := strings.TrimSpace(li.Text()); text != "" {
					items = append(items, text)
				}
			})
			if len(items) > 0 {
				raw = append(raw, mailpress.List{Ordered: name == "ol", Items: items})
			}
		}
	})

	return mergeParagraphs(raw)
}

// mergeParagraphs concatenates runs of adjacent paragraphs with a blank
// line so that no two Paragraph blocks ever touch. The pass is
// idempotent.
func mergeParagraphs(blocks []mailpress.TextBlock) []mailpress.TextBlock {
	merged := make([]mailpress.TextBlock, 0, len(blocks))
	for _, block := range blocks {
		if p, ok := block.(mailpress.Paragraph); ok && len(merged) > 0 {
			if last, ok := merged[len(merged)-1].(mailpress.Paragraph); ok {
				merged[len(merged)-1] = mailpress.Paragraph{Text: last.Text + "\n\n" + p.Text}
				continue
			}
		}
		merged = append(merged, block)
	}
	return merged
}

// insideListItem reports whether the node has an li ancestor.
func insideListItem(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "li" {
			return true
		}
	}
	return false
}

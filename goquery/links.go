package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mailpress"
)

// extractLinks returns the meaningful links embedded in the email copy,
// de-duplicated by href with first occurrence winning. When the
// document contains known text-content containers the search is scoped
// to them; otherwise every anchor is considered.
func (e *Extractor) extractLinks(doc *goquery.Document) []mailpress.EmbeddedLink {
	scope := doc.Selection
	if selector := containerSelector(e.rules.Links.ContentContainers); selector != "" {
		if containers := doc.Find(selector); containers.Length() > 0 {
			scope = containers
		}
	}

	seen := make(map[string]bool)
	links := make([]mailpress.EmbeddedLink, 0)

	scope.Find("a").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if text == "" || href == "" {
			return
		}
		if e.rules.IsUtilityLink(text, href) {
			return
		}
		if e.rules.IsTrackingLink(href) {
			return
		}
		// Button-shaped anchors belong to CTA detection, whether or not
		// one of them was selected.
		if e.isButtonLike(s) {
			return
		}
		if seen[href] {
			return
		}
		seen[href] = true
		links = append(links, mailpress.EmbeddedLink{Text: text, URL: href})
	})

	return links
}

// containerSelector builds a grouped class selector from class names.
func containerSelector(classes []string) string {
	if len(classes) == 0 {
		return ""
	}
	selectors := make([]string, len(classes))
	for i, class := range classes {
		selectors[i] = "." + class
	}
	return strings.Join(selectors, ", ")
}

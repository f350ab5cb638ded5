package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mailpress"
)

// detectCTA walks every anchor once in document order, keeps the
// button-like ones that are not utility links, scores them, and returns
// the strict best. Ties resolve to the earlier anchor. No qualifying
// candidate means no CTA.
func (e *Extractor) detectCTA(doc *goquery.Document) *mailpress.CallToAction {
	var best *mailpress.CallToAction
	bestScore := -1

	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		if !e.isButtonLike(s) {
			return
		}

		text := strings.TrimSpace(s.Text())
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if e.rules.IsUtilityLink(text, href) {
			return
		}

		if score := e.scoreCandidate(s, text); score > bestScore {
			bestScore = score
			best = &mailpress.CallToAction{Text: text, URL: href}
		}
	})

	return best
}

// isButtonLike reports whether the anchor looks like a button: a
// button-marker class, button styling on the anchor or its table-cell
// parent, or an explicit button role.
func (e *Extractor) isButtonLike(s *goquery.Selection) bool {
	for _, class := range e.rules.CTA.ButtonClasses {
		if s.HasClass(class) {
			return true
		}
	}
	if styleSuggestsButton(s.AttrOr("style", "")) {
		return true
	}
	if parent := s.Parent(); isTableCell(parent) && styleSuggestsButton(parent.AttrOr("style", "")) {
		return true
	}
	return strings.EqualFold(s.AttrOr("role", ""), "button")
}

// scoreCandidate computes the additive priority score for a candidate.
func (e *Extractor) scoreCandidate(s *goquery.Selection, text string) int {
	rules := e.rules.CTA
	score := 0

	if classContainsAny(s, rules.ScoreClasses) {
		score += 10
	}

	lower := strings.ToLower(text)
	for _, phrase := range rules.ActionPhrases {
		if strings.Contains(lower, phrase) {
			score += 5
			break
		}
	}

	if utf8.RuneCountInString(text) < rules.ShortTextBelow {
		score += 3
	}

	style := normalizeStyle(s.AttrOr("style", ""))
	if strings.Contains(style, "font-weight") || strings.Contains(style, "bold") {
		score += 2
	}
	if strings.Contains(style, "background") || strings.Contains(style, "color:") {
		score += 2
	}

	if parentSuggestsCentering(s.Parent()) {
		score += 2
	}

	return score
}

// styleSuggestsButton reports whether an inline style carries both a
// button-ish property (padding, rounded corners, background) and a
// block or centering hint.
func styleSuggestsButton(style string) bool {
	style = normalizeStyle(style)
	buttonish := strings.Contains(style, "padding") ||
		strings.Contains(style, "border-radius") ||
		strings.Contains(style, "background")
	if !buttonish {
		return false
	}
	return strings.Contains(style, "display:block") ||
		strings.Contains(style, "display:inline-block") ||
		strings.Contains(style, "text-align:center") ||
		strings.Contains(style, "margin:auto") ||
		strings.Contains(style, "margin:0auto")
}

// parentSuggestsCentering reports whether the immediate parent centers
// its content via style, class or the legacy align attribute.
func parentSuggestsCentering(parent *goquery.Selection) bool {
	if parent.Length() == 0 {
		return false
	}
	style := normalizeStyle(parent.AttrOr("style", ""))
	if strings.Contains(style, "text-align:center") ||
		strings.Contains(style, "margin:auto") ||
		strings.Contains(style, "margin:0auto") {
		return true
	}
	if strings.EqualFold(parent.AttrOr("align", ""), "center") {
		return true
	}
	return classContainsAny(parent, []string{"center", "align"})
}

// classContainsAny reports whether the selection's class attribute
// contains any of the keywords, case-insensitively.
func classContainsAny(s *goquery.Selection, keywords []string) bool {
	attr := strings.ToLower(s.AttrOr("class", ""))
	if attr == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(attr, kw) {
			return true
		}
	}
	return false
}

// isTableCell reports whether the selection is a td or th element.
func isTableCell(s *goquery.Selection) bool {
	if s.Length() == 0 {
		return false
	}
	name := goquery.NodeName(s)
	return name == "td" || name == "th"
}

// normalizeStyle lowercases an inline style and strips spaces so that
// property probes are insensitive to formatting.
func normalizeStyle(style string) string {
	return strings.ReplaceAll(strings.ToLower(style), " ", "")
}

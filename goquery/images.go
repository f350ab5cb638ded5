package goquery

import (
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mailpress"
	"golang.org/x/net/html"
)

// imageRecord is the per-image feature record the classifier consumes.
// Dimensions are 0 when the attribute is missing or unparsable.
type imageRecord struct {
	url     string
	alt     string
	width   int
	height  int
	index   int      // ordinal among all img nodes, including src-less
	ratio   float64  // index / total img nodes
	classes []string // the node's own class tokens
	lineage []string // own plus ancestor class tokens, bounded walk
	rank    int      // ordinal within a document-order walk of the body
	small   bool

	likelyUI      bool
	likelyContent bool
}

// extractImages collects a feature record per image and classifies the
// records into the content subset, preserving document order.
func (e *Extractor) extractImages(doc *goquery.Document) []mailpress.ContentImage {
	return e.classifyImages(e.collectImages(doc))
}

// collectImages builds one feature record per img node with a non-empty
// src. Position ratio is computed over all img nodes so that src-less
// placeholders still shape the document's top/bottom geography.
func (e *Extractor) collectImages(doc *goquery.Document) []*imageRecord {
	rules := e.rules.Images
	imgs := doc.Find("img")
	total := imgs.Length()
	ranks := documentRanks(doc, rules.BodySelector)

	var records []*imageRecord
	imgs.Each(func(i int, s *goquery.Selection) {
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if src == "" {
			return
		}

		node := s.Nodes[0]
		rec := &imageRecord{
			url:     src,
			alt:     s.AttrOr("alt", ""),
			width:   parseDimension(s.AttrOr("width", "")),
			height:  parseDimension(s.AttrOr("height", "")),
			index:   i,
			classes: classTokens(node),
			lineage: classLineage(node, maxAncestorDepth),
			rank:    ranks[node],
		}
		if total > 0 {
			rec.ratio = float64(i) / float64(total)
		}
		rec.small = rec.width > 0 && rec.height > 0 &&
			(rec.width < rules.SmallBelow || rec.height < rules.SmallBelow)
		rec.likelyUI = e.likelyUI(rec)
		rec.likelyContent = e.likelyContent(rec)

		records = append(records, rec)
	})

	return records
}

// classifyImages selects the content subset of the feature records.
//
// With one or two images everything that is not clearly chrome is kept.
// With more, records are ordered by vertical rank, a header-looking
// first record and a footer-looking last record are trimmed, and chrome
// is filtered from the middle. A fully filtered middle falls back to
// its largest image so that an image-led campaign never comes back
// empty-handed.
func (e *Extractor) classifyImages(records []*imageRecord) []mailpress.ContentImage {
	var kept []*imageRecord

	if len(records) <= 2 {
		for _, rec := range records {
			if !rec.likelyUI {
				kept = append(kept, rec)
			}
		}
	} else {
		byRank := make([]*imageRecord, len(records))
		copy(byRank, records)
		sort.SliceStable(byRank, func(i, j int) bool { return byRank[i].rank < byRank[j].rank })

		start, end := 0, len(byRank)
		if e.likelyHeader(byRank[0]) {
			start = 1
		}
		if e.likelyFooter(byRank[len(byRank)-1]) {
			end--
		}
		middle := byRank[start:end]

		for _, rec := range middle {
			if !rec.likelyUI {
				kept = append(kept, rec)
			}
		}
		if len(kept) == 0 && len(middle) > 0 {
			largest := middle[0]
			for _, rec := range middle[1:] {
				if rec.width*rec.height > largest.width*largest.height {
					largest = rec
				}
			}
			kept = []*imageRecord{largest}
		}
	}

	// Boundary trimming works in rank order; output follows the source.
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].index < kept[j].index })

	images := make([]mailpress.ContentImage, 0, len(kept))
	for _, rec := range kept {
		images = append(images, mailpress.ContentImage{URL: rec.url, Alt: rec.alt})
	}
	return images
}

// likelyUI flags chrome: keyword hits in the URL or alt text, small
// dimensions, or a tracking indicator in the URL.
func (e *Extractor) likelyUI(rec *imageRecord) bool {
	rules := e.rules.Images
	return containsAnyFold(rec.url, rules.UIKeywords) ||
		containsAnyFold(rec.alt, rules.UIKeywords) ||
		rec.small ||
		containsAnyFold(rec.url, rules.TrackingIndicators)
}

// likelyContent flags probable content imagery: content classes in the
// lineage, or a large image sitting in the middle of the document.
func (e *Extractor) likelyContent(rec *imageRecord) bool {
	rules := e.rules.Images
	if intersects(rec.lineage, rules.ContentKeywords) || intersects(rec.lineage, rules.ContentClasses) {
		return true
	}
	largeEnough := rec.width >= rules.LargeAtLeast || rec.height >= rules.LargeAtLeast
	inMiddle := rec.ratio >= rules.MiddleLow && rec.ratio <= rules.MiddleHigh
	return largeEnough && inMiddle
}

// likelyHeader recognizes logo and masthead images near the top of the
// document.
func (e *Extractor) likelyHeader(rec *imageRecord) bool {
	rules := e.rules.Images
	if rec.ratio >= rules.TopRatio {
		return false
	}
	if containsAnyFold(rec.url, rules.HeaderKeywords) || containsAnyFold(rec.alt, rules.HeaderKeywords) {
		return true
	}
	if intersects(rec.classes, rules.HeaderClasses) {
		return true
	}
	if intersects(rec.lineage, rules.HeaderContainers) {
		return true
	}
	return rec.width > 0 && rec.width < rules.LogoWidthBelow
}

// likelyFooter recognizes social icons and signoff images near the
// bottom of the document.
func (e *Extractor) likelyFooter(rec *imageRecord) bool {
	rules := e.rules.Images
	if rec.ratio <= rules.BottomRatio {
		return false
	}
	if containsAnyFold(rec.url, rules.FooterKeywords) || containsAnyFold(rec.alt, rules.FooterKeywords) {
		return true
	}
	if intersects(rec.lineage, rules.FooterContainers) {
		return true
	}
	return rec.small
}

// documentRanks maps every element inside the body container (or the
// whole document when no container matches) to its ordinal position in
// a document-order walk. Elements outside the walk rank 0.
func documentRanks(doc *goquery.Document, bodySelector string) map[*html.Node]int {
	scope := doc.Selection
	if bodySelector != "" {
		if body := doc.Find(bodySelector); body.Length() > 0 {
			scope = body.First()
		}
	}

	ranks := make(map[*html.Node]int)
	scope.Find("*").Each(func(i int, s *goquery.Selection) {
		ranks[s.Nodes[0]] = i
	})
	return ranks
}

// classTokens returns the node's class attribute split into tokens.
func classTokens(n *html.Node) []string {
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			return strings.Fields(attr.Val)
		}
	}
	return nil
}

// classLineage gathers class tokens from the node and up to maxDepth
// ancestor levels. The walk is bounded so malformed trees cannot send
// it far afield.
func classLineage(n *html.Node, maxDepth int) []string {
	tokens := classTokens(n)
	parent := n.Parent
	for depth := 0; parent != nil && depth < maxDepth; depth++ {
		if parent.Type == html.ElementNode {
			tokens = append(tokens, classTokens(parent)...)
		}
		parent = parent.Parent
	}
	return tokens
}

// parseDimension parses a width/height attribute, tolerating a px
// suffix. Returns 0 when the value is missing or unparsable.
func parseDimension(value string) int {
	value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "px"))
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

package goquery

import (
	"strings"

	"github.com/fwojciec/mailpress"
	"gopkg.in/yaml.v3"
)

// Rules holds the keyword sets and thresholds that drive classification.
// Every signal the extractor computes is derived from these tables, so
// they can be tested in isolation and tuned per deployment via a YAML
// override file.
type Rules struct {
	Images ImageRules `yaml:"images"`
	CTA    CTARules   `yaml:"cta"`
	Links  LinkRules  `yaml:"links"`

	// Utility patterns match links that are never content: social
	// profiles, vendor unsubscribe/preference pages, legal boilerplate.
	// Matched case-insensitively against link text and href.
	Utility []string `yaml:"utility_patterns"`
}

// ImageRules configures the image signal collector and classifier.
type ImageRules struct {
	UIKeywords         []string `yaml:"ui_keywords"`
	TrackingIndicators []string `yaml:"tracking_indicators"`
	ContentKeywords    []string `yaml:"content_keywords"`
	ContentClasses     []string `yaml:"content_classes"`
	HeaderKeywords     []string `yaml:"header_keywords"`
	HeaderClasses      []string `yaml:"header_classes"`
	HeaderContainers   []string `yaml:"header_containers"`
	FooterKeywords     []string `yaml:"footer_keywords"`
	FooterContainers   []string `yaml:"footer_containers"`

	// BodySelector identifies the email body container used for
	// vertical-rank estimation. Falls back to the whole document.
	BodySelector string `yaml:"body_selector"`

	// SmallBelow marks an image as small when either known dimension
	// is below this many pixels.
	SmallBelow int `yaml:"small_below"`

	// LargeAtLeast is the minimum dimension on either axis for the
	// size-based content signal.
	LargeAtLeast int `yaml:"large_at_least"`

	// LogoWidthBelow flags a top-of-document image as header material
	// when its known width is below this many pixels.
	LogoWidthBelow int `yaml:"logo_width_below"`

	TopRatio    float64 `yaml:"top_ratio"`
	BottomRatio float64 `yaml:"bottom_ratio"`
	MiddleLow   float64 `yaml:"middle_low"`
	MiddleHigh  float64 `yaml:"middle_high"`
}

// CTARules configures call-to-action candidate discovery and scoring.
type CTARules struct {
	ButtonClasses  []string `yaml:"button_classes"`
	ScoreClasses   []string `yaml:"score_classes"`
	ActionPhrases  []string `yaml:"action_phrases"`
	ShortTextBelow int      `yaml:"short_text_below"`
}

// LinkRules configures embedded link extraction.
type LinkRules struct {
	ContentContainers []string `yaml:"content_containers"`
	TrackingPatterns  []string `yaml:"tracking_patterns"`
}

// DefaultRules returns the rule tables tuned for Mailchimp-style
// campaign HTML.
func DefaultRules() *Rules {
	return &Rules{
		Images: ImageRules{
			UIKeywords: []string{
				"logo", "footer", "header", "icon", "social", "facebook",
				"twitter", "instagram", "linkedin", "youtube", "button",
				"pixel", "tracking", "spacer", "signature",
			},
			TrackingIndicators: []string{
				"pixel", "tracking", "spacer", "transparent.gif",
				"mailchimp.com", "list-manage.com",
			},
			ContentKeywords: []string{
				"content", "article", "story", "banner", "hero", "featured",
			},
			ContentClasses: []string{"mceImage", "imageDropZone"},
			HeaderKeywords: []string{"logo", "header", "brand"},
			HeaderClasses:  []string{"logo", "header", "brand", "mceLogo"},
			HeaderContainers: []string{
				"mceHeader", "mceSectionHeader",
			},
			FooterKeywords: []string{
				"footer", "social", "facebook", "twitter", "instagram",
				"linkedin", "youtube", "contact", "signature",
			},
			FooterContainers: []string{
				"mceFooter", "mceSectionFooter", "socialFollow",
			},
			BodySelector:   "table#bodyTable",
			SmallBelow:     50,
			LargeAtLeast:   200,
			LogoWidthBelow: 200,
			TopRatio:       0.2,
			BottomRatio:    0.8,
			MiddleLow:      0.2,
			MiddleHigh:     0.8,
		},
		CTA: CTARules{
			ButtonClasses: []string{
				"mcnButton", "mceButton", "button", "btn", "cta", "action",
			},
			ScoreClasses: []string{"cta", "action", "primary", "main"},
			ActionPhrases: []string{
				"learn more", "read more", "sign up", "get started",
				"buy now", "shop now", "order now", "book now",
				"subscribe", "download", "register", "join",
				"claim", "get your", "click here", "try it",
				"view more", "see more", "discover", "explore",
			},
			ShortTextBelow: 30,
		},
		Links: LinkRules{
			ContentContainers: []string{
				"mcnTextContent", "mcnTextBlock", "mceText", "bodyContent",
			},
			TrackingPatterns: []string{
				"list-manage.com", "mailchimp.com", "doubleclick.net",
				"google-analytics.com", "/track", "/pixel", "/beacon",
				"open.php",
			},
		},
		Utility: []string{
			"facebook.com", "twitter.com", "instagram.com", "linkedin.com",
			"youtube.com", "pinterest.com",
			"mailchimp.com", "list-manage.com", "unsubscribe",
			"preferences", "view in browser", "view this email",
			"privacy", "terms", "contact", "help", "faq",
		},
	}
}

// ParseRules overlays a YAML document onto the default rules. Keys
// absent from the document keep their default values.
func ParseRules(data []byte) (*Rules, error) {
	rules := DefaultRules()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, mailpress.Errorf(mailpress.EINVALID, "failed to parse rules: %v", err)
	}
	return rules, nil
}

// IsUtilityLink reports whether the link's text or href matches a
// utility pattern.
func (r *Rules) IsUtilityLink(text, href string) bool {
	text = strings.ToLower(text)
	href = strings.ToLower(href)
	for _, pattern := range r.Utility {
		if strings.Contains(text, pattern) || strings.Contains(href, pattern) {
			return true
		}
	}
	return false
}

// IsTrackingLink reports whether the href is a same-page anchor, a
// javascript pseudo-URL, or points at a known tracking endpoint.
func (r *Rules) IsTrackingLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	if strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
		return true
	}
	for _, pattern := range r.Links.TrackingPatterns {
		if strings.Contains(href, pattern) {
			return true
		}
	}
	return false
}

// containsAnyFold reports whether s contains any of the given
// substrings, case-insensitively.
func containsAnyFold(s string, substrings []string) bool {
	s = strings.ToLower(s)
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// intersects reports whether any of the tokens appears in the set.
// Comparison is exact; class tokens are matched as written.
func intersects(tokens []string, set []string) bool {
	for _, token := range tokens {
		for _, member := range set {
			if token == member {
				return true
			}
		}
	}
	return false
}

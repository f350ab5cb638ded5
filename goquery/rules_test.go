package goquery_test

import (
	"testing"

	"github.com/fwojciec/mailpress"
	"github.com/fwojciec/mailpress/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	t.Parallel()

	rules := goquery.DefaultRules()

	assert.Contains(t, rules.Images.UIKeywords, "logo")
	assert.Contains(t, rules.Images.TrackingIndicators, "list-manage.com")
	assert.Contains(t, rules.CTA.ButtonClasses, "mcnButton")
	assert.Contains(t, rules.CTA.ActionPhrases, "learn more")
	assert.Contains(t, rules.Links.ContentContainers, "mcnTextContent")
	assert.Contains(t, rules.Utility, "unsubscribe")
	assert.Equal(t, 50, rules.Images.SmallBelow)
	assert.Equal(t, "table#bodyTable", rules.Images.BodySelector)
}

func TestRules_IsUtilityLink(t *testing.T) {
	t.Parallel()

	rules := goquery.DefaultRules()

	tests := []struct {
		name string
		text string
		href string
		want bool
	}{
		{"social destination", "Follow us", "https://facebook.com/acme", true},
		{"unsubscribe text", "Unsubscribe from this list", "https://example.com/u", true},
		{"case insensitive", "VIEW IN BROWSER", "https://example.com/v", true},
		{"ordinary article link", "Read the story", "https://example.com/story", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, rules.IsUtilityLink(tt.text, tt.href))
		})
	}
}

func TestRules_IsTrackingLink(t *testing.T) {
	t.Parallel()

	rules := goquery.DefaultRules()

	tests := []struct {
		name string
		href string
		want bool
	}{
		{"fragment", "#section", true},
		{"javascript", "javascript:void(0)", true},
		{"campaign tracker", "https://example.us1.list-manage.com/track/click?u=1", true},
		{"beacon path", "https://example.com/beacon?id=1", true},
		{"ordinary link", "https://example.com/story", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, rules.IsTrackingLink(tt.href))
		})
	}
}

func TestParseRules(t *testing.T) {
	t.Parallel()

	t.Run("overrides defaults per section", func(t *testing.T) {
		t.Parallel()

		rules, err := goquery.ParseRules([]byte(`
images:
  small_below: 80
cta:
  button_classes:
    - customButton
`))
		require.NoError(t, err)

		assert.Equal(t, 80, rules.Images.SmallBelow)
		assert.Equal(t, []string{"customButton"}, rules.CTA.ButtonClasses)
		// Untouched sections keep their defaults.
		assert.Contains(t, rules.Utility, "unsubscribe")
		assert.Contains(t, rules.Images.UIKeywords, "logo")
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ParseRules([]byte("images: ["))
		require.Error(t, err)
		assert.Equal(t, mailpress.EINVALID, mailpress.ErrorCode(err))
	})
}

package extractor

import (
	"net/url"
	"testing"

	"fundwatch/internal/config"
	"fundwatch/internal/errorwrapper"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Funding opportunities</title>
  <link>https://example.com/funding</link>
  <item>
    <title>Green Transition Call</title>
    <link>https://example.com/funding/calls/42</link>
    <guid>call-42</guid>
    <description>Support for green projects.</description>
    <enclosure url="https://example.com/images/green.png" type="image/png" length="1000"/>
  </item>
  <item>
    <title>Digital Skills Call</title>
    <link>https://example.com/funding/calls/43</link>
  </item>
  <item>
    <link>https://example.com/funding/calls/44</link>
    <description>Item without a title is dropped.</description>
  </item>
</channel>
</rss>`

func newFeedExtractor(t *testing.T) (Extractor, *url.URL) {
	t.Helper()
	cfg := config.NewDefaultSourceConfig()
	cfg.Format = "feed"
	base, err := url.Parse("https://example.com/funding/feed.xml")
	require.NoError(t, err)
	fe, err := NewExtractor(&cfg, zerolog.Nop())
	require.NoError(t, err)
	return fe, base
}

func TestFeedExtract(t *testing.T) {
	fe, base := newFeedExtractor(t)

	entries, err := fe.Extract([]byte(feedXML), base)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "call-42", entries[0].ID)
	assert.Equal(t, "Green Transition Call", entries[0].Title)
	assert.Equal(t, "Support for green projects.", entries[0].Summary)
	assert.Equal(t, "https://example.com/funding/calls/42", entries[0].Link)
	assert.Equal(t, "https://example.com/images/green.png", entries[0].ImageURL)
	assert.Nil(t, entries[0].EndDate)

	// No guid: the normalized link becomes the id.
	assert.Equal(t, "https://example.com/funding/calls/43", entries[1].ID)
}

func TestFeedExtract_NotAFeedIsContractError(t *testing.T) {
	fe, base := newFeedExtractor(t)

	_, err := fe.Extract([]byte("<html><body>not a feed</body></html>"), base)
	require.Error(t, err)
	assert.True(t, errorwrapper.IsContractError(err))
}

func TestFeedExtract_EmptyFeedIsContractError(t *testing.T) {
	fe, base := newFeedExtractor(t)

	empty := `<?xml version="1.0"?><rss version="2.0"><channel><title>t</title></channel></rss>`
	_, err := fe.Extract([]byte(empty), base)
	require.Error(t, err)
	assert.True(t, errorwrapper.IsContractError(err))
}

func TestNewExtractor_StrategySelection(t *testing.T) {
	cfg := config.NewDefaultSourceConfig()

	for format, want := range map[string]any{
		"":        &ListingExtractor{},
		"listing": &ListingExtractor{},
		"detail":  &DetailExtractor{},
		"feed":    &FeedExtractor{},
	} {
		cfg.Format = format
		ex, err := NewExtractor(&cfg, zerolog.Nop())
		require.NoError(t, err)
		assert.IsType(t, want, ex)
	}

	cfg.Format = "sqlite"
	_, err := NewExtractor(&cfg, zerolog.Nop())
	assert.Error(t, err)
}

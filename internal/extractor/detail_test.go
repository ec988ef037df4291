package extractor

import (
	"net/url"
	"testing"
	"time"

	"fundwatch/internal/config"
	"fundwatch/internal/errorwrapper"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const detailHTML = `
<html><head>
<meta property="og:image" content="https://cdn.example.com/preview.jpg">
</head><body>
<h1>Horizon Research Call</h1>
<main>
  <p>Open</p>
  <p>This call funds collaborative research projects on climate adaptation across member states.</p>
  <img src="/images/inline.png">
</main>
<dl>
  <dt>Opening date</dt><dd>1 January 2026</dd>
  <dt>End date</dt><dd>14&nbsp;March 2026</dd>
</dl>
</body></html>`

const detailHTMLECL = `
<html><body>
<h1>Erasmus Mobility Call</h1>
<main><img src="/images/mobility.png"></main>
<div class="ecl-description-list">
  <div class="ecl-description-list__term">End date</div>
  <div class="ecl-description-list__definition">30 June 2026</div>
</div>
</body></html>`

func newDetailExtractor(t *testing.T) (*DetailExtractor, *url.URL) {
	t.Helper()
	cfg := config.NewDefaultSourceConfig()
	base, err := url.Parse("https://example.com/funding/calls/42")
	require.NoError(t, err)
	return NewDetailExtractor(&cfg, zerolog.Nop()), base
}

func TestDetailExtract(t *testing.T) {
	de, base := newDetailExtractor(t)

	entries, err := de.Extract([]byte(detailHTML), base)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "https://example.com/funding/calls/42", entry.ID)
	assert.Equal(t, "Horizon Research Call", entry.Title)
	// The short "Open" paragraph is skipped.
	assert.Contains(t, entry.Summary, "collaborative research projects")
	require.NotNil(t, entry.EndDate)
	assert.Equal(t, time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC), *entry.EndDate)
	// og:image wins over the inline content image.
	assert.Equal(t, "https://cdn.example.com/preview.jpg", entry.ImageURL)
}

func TestDetailExtract_ECLDescriptionList(t *testing.T) {
	de, base := newDetailExtractor(t)

	entries, err := de.Extract([]byte(detailHTMLECL), base)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	require.NotNil(t, entry.EndDate)
	assert.Equal(t, time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC), *entry.EndDate)
	// No og:image: falls back to the first content image, resolved
	// against the page URL.
	assert.Equal(t, "https://example.com/images/mobility.png", entry.ImageURL)
	assert.Empty(t, entry.Summary)
}

func TestDetailExtract_MalformedEndDate(t *testing.T) {
	de, base := newDetailExtractor(t)

	html := `<html><body><h1>Call</h1>
	<dl><dt>End date</dt><dd>sometime next spring</dd></dl></body></html>`
	entries, err := de.Extract([]byte(html), base)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].EndDate)
}

func TestDetailExtract_MissingHeadingIsContractError(t *testing.T) {
	de, base := newDetailExtractor(t)

	_, err := de.Extract([]byte("<html><body><p>no heading here</p></body></html>"), base)
	require.Error(t, err)
	assert.True(t, errorwrapper.IsContractError(err))
}

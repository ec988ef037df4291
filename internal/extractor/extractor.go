// Package extractor turns raw fetched payloads into normalized Entry
// sequences. The change detector depends only on that sequence; the
// scraping strategy behind it is swappable per source format without
// touching reconciliation.
package extractor

import (
	"net/url"
	"strings"

	"fundwatch/internal/config"
	"fundwatch/internal/errorwrapper"
	"fundwatch/internal/models"

	"github.com/rs/zerolog"
)

// Extractor parses a fetched payload into entries. The base URL is
// the URL the payload was fetched from; relative links and images are
// resolved against it.
//
// A ContractError return means the expected structure of the source is
// gone and an operator should be alerted. Per-item defects (missing
// title or link, malformed date) never surface as errors: the item is
// dropped or the field left unset.
type Extractor interface {
	Extract(payload []byte, base *url.URL) ([]models.Entry, error)
}

// NewExtractor selects the extraction strategy for the configured
// source format.
func NewExtractor(cfg *config.SourceConfig, logger zerolog.Logger) (Extractor, error) {
	format := strings.ToLower(cfg.Format)
	switch format {
	case "", "listing":
		return NewListingExtractor(cfg, logger), nil
	case "detail":
		return NewDetailExtractor(cfg, logger), nil
	case "feed":
		return NewFeedExtractor(logger), nil
	default:
		return nil, errorwrapper.NewValidationError("source_config.format", cfg.Format, "unknown source format")
	}
}

// cleanText trims whitespace and replaces the non-breaking spaces the
// source site sprinkles into its markup.
func cleanText(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, " ", " "))
}

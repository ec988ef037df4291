package extractor

import (
	"bytes"
	"net/url"

	"fundwatch/internal/config"
	"fundwatch/internal/errorwrapper"
	"fundwatch/internal/models"
	"fundwatch/internal/urlhandler"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// ListingExtractor locates repeated card structures on an overview
// page and produces one entry per card. Cards without a usable title
// or link are dropped: emitting placeholder values would corrupt
// deduplication by id.
type ListingExtractor struct {
	selectors config.ListingSelectors
	logger    zerolog.Logger
}

// NewListingExtractor creates a ListingExtractor using the configured
// CSS selectors.
func NewListingExtractor(cfg *config.SourceConfig, logger zerolog.Logger) *ListingExtractor {
	return &ListingExtractor{
		selectors: cfg.ListingSelectors,
		logger:    logger.With().Str("component", "ListingExtractor").Logger(),
	}
}

// Extract parses an HTML listing page into entries, deduplicated by
// id in first-seen order. Zero matches for the container selector is
// a ContractError: either the site layout changed or the selector
// rotted, and both need an operator.
func (le *ListingExtractor) Extract(payload []byte, base *url.URL) ([]models.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse listing HTML")
	}

	baseStr := ""
	if base != nil {
		baseStr = base.String()
	}

	cards := doc.Find(le.selectors.Container)
	if cards.Length() == 0 {
		return nil, errorwrapper.NewContractError(baseStr, le.selectors.Container)
	}

	seen := make(map[string]bool)
	var entries []models.Entry

	cards.Each(func(i int, card *goquery.Selection) {
		title := cleanText(card.Find(le.selectors.Title).First().Text())
		href, _ := card.Find(le.selectors.Link).First().Attr("href")

		if title == "" || href == "" {
			le.logger.Debug().Int("card_index", i).Msg("Dropping card without title or link")
			return
		}

		link, err := urlhandler.ResolveURL(href, base)
		if err != nil {
			le.logger.Debug().Int("card_index", i).Str("href", href).Msg("Dropping card with unresolvable link")
			return
		}

		if seen[link] {
			return
		}
		seen[link] = true

		entry := models.Entry{
			ID:      link,
			Title:   title,
			Summary: cleanText(card.Find(le.selectors.Summary).First().Text()),
			Link:    link,
		}

		if src, ok := card.Find(le.selectors.Image).First().Attr("src"); ok {
			if imageURL, err := urlhandler.ResolveURL(src, base); err == nil {
				entry.ImageURL = imageURL
			}
		}

		entries = append(entries, entry)
	})

	le.logger.Debug().Int("cards", cards.Length()).Int("entries", len(entries)).Msg("Listing page extracted")
	return entries, nil
}

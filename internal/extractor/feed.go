package extractor

import (
	"bytes"
	"net/url"
	"strings"
	"time"

	"fundwatch/internal/errorwrapper"
	"fundwatch/internal/models"
	"fundwatch/internal/urlhandler"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
)

// FeedExtractor maps RSS/Atom/JSON feed items to entries. gofeed
// normalizes the three formats into one item shape, so a single field
// mapping covers the feed variants the source site exposes.
type FeedExtractor struct {
	parser *gofeed.Parser
	logger zerolog.Logger
}

// NewFeedExtractor creates a FeedExtractor.
func NewFeedExtractor(logger zerolog.Logger) *FeedExtractor {
	return &FeedExtractor{
		parser: gofeed.NewParser(),
		logger: logger.With().Str("component", "FeedExtractor").Logger(),
	}
}

// Extract parses the feed payload. A payload that does not parse as a
// feed at all, or parses to zero items, is a ContractError: a healthy
// source feed always carries items, and "suddenly empty" is how schema
// drift presents itself.
func (fe *FeedExtractor) Extract(payload []byte, base *url.URL) ([]models.Entry, error) {
	baseStr := ""
	if base != nil {
		baseStr = base.String()
	}

	feed, err := fe.parser.Parse(bytes.NewReader(payload))
	if err != nil {
		fe.logger.Warn().Err(err).Str("url", baseStr).Msg("Feed payload did not parse")
		return nil, errorwrapper.NewContractError(baseStr, "parseable feed")
	}
	if len(feed.Items) == 0 {
		return nil, errorwrapper.NewContractError(baseStr, "feed items")
	}

	seen := make(map[string]bool)
	var entries []models.Entry

	for _, item := range feed.Items {
		title := cleanText(item.Title)
		if title == "" || item.Link == "" {
			fe.logger.Debug().Str("guid", item.GUID).Msg("Dropping feed item without title or link")
			continue
		}

		link, err := urlhandler.ResolveURL(item.Link, base)
		if err != nil {
			fe.logger.Debug().Str("link", item.Link).Msg("Dropping feed item with unresolvable link")
			continue
		}

		id := link
		if guid := strings.TrimSpace(item.GUID); guid != "" {
			id = guid
		}
		if seen[id] {
			continue
		}
		seen[id] = true

		entries = append(entries, models.Entry{
			ID:       id,
			Title:    title,
			Summary:  cleanText(item.Description),
			EndDate:  feedItemEndDate(item),
			ImageURL: feedItemImage(item, base),
			Link:     link,
		})
	}

	fe.logger.Debug().Int("items", len(feed.Items)).Int("entries", len(entries)).Msg("Feed extracted")
	return entries, nil
}

// feedItemEndDate looks for a deadline carried as a feed extension
// element. Feeds that only carry a publication date yield no end date;
// a publication date is not a deadline, and treating it as one would
// fire reminders for long-closed calls.
func feedItemEndDate(item *gofeed.Item) *time.Time {
	for _, namespace := range item.Extensions {
		for key, exts := range namespace {
			normalized := strings.ReplaceAll(strings.ToLower(key), "_", "")
			if normalized != "enddate" && normalized != "deadline" {
				continue
			}
			for _, ext := range exts {
				if endDate, err := models.ParseEndDate(ext.Value); err == nil {
					return &endDate
				}
			}
		}
	}
	return nil
}

// feedItemImage returns the item image, or the first image enclosure.
func feedItemImage(item *gofeed.Item, base *url.URL) string {
	if item.Image != nil && item.Image.URL != "" {
		if imageURL, err := urlhandler.ResolveURL(item.Image.URL, base); err == nil {
			return imageURL
		}
	}
	for _, enclosure := range item.Enclosures {
		if enclosure == nil || !strings.HasPrefix(enclosure.Type, "image/") {
			continue
		}
		if imageURL, err := urlhandler.ResolveURL(enclosure.URL, base); err == nil {
			return imageURL
		}
	}
	return ""
}

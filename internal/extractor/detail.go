package extractor

import (
	"bytes"
	"net/url"
	"strings"
	"time"

	"fundwatch/internal/config"
	"fundwatch/internal/errorwrapper"
	"fundwatch/internal/models"
	"fundwatch/internal/urlhandler"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

const endDateLabel = "End date"

// DetailExtractor reads a single item's detail page: title from the
// first top-level heading, summary from the first substantial
// paragraph of the main content, end date from label/value structural
// pairs, image from the social-preview meta tag.
type DetailExtractor struct {
	minSummaryLen int
	logger        zerolog.Logger
}

// NewDetailExtractor creates a DetailExtractor.
func NewDetailExtractor(cfg *config.SourceConfig, logger zerolog.Logger) *DetailExtractor {
	minLen := cfg.MinSummaryLen
	if minLen <= 0 {
		minLen = config.DefaultDetailMinSummaryLen
	}
	return &DetailExtractor{
		minSummaryLen: minLen,
		logger:        logger.With().Str("component", "DetailExtractor").Logger(),
	}
}

// Extract produces exactly one entry for the page, identified by its
// own URL. A page without an h1 is a ContractError: the heading is the
// structural marker the whole extraction hangs off.
func (de *DetailExtractor) Extract(payload []byte, base *url.URL) ([]models.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse detail HTML")
	}

	baseStr := ""
	if base != nil {
		baseStr = base.String()
	}

	title := cleanText(doc.Find("h1").First().Text())
	if title == "" {
		return nil, errorwrapper.NewContractError(baseStr, "h1")
	}

	link, err := urlhandler.NormalizeURL(baseStr)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "detail page URL is not usable as an entry id")
	}

	entry := models.Entry{
		ID:       link,
		Title:    title,
		Summary:  de.extractSummary(doc),
		EndDate:  de.extractEndDate(doc),
		ImageURL: de.extractImageURL(doc, base),
		Link:     link,
	}

	return []models.Entry{entry}, nil
}

// extractSummary returns the first sufficiently long paragraph inside
// the main-content region. Short paragraphs are labels and metadata,
// not descriptions.
func (de *DetailExtractor) extractSummary(doc *goquery.Document) string {
	summary := ""
	doc.Find("main p").EachWithBreak(func(i int, p *goquery.Selection) bool {
		text := cleanText(p.Text())
		if len(text) >= de.minSummaryLen {
			summary = text
			return false
		}
		return true
	})
	return summary
}

// extractEndDate scans label/value structural pairs for the end-date
// label. Two structures appear in the wild: a traditional dt/dd
// definition list, and the ECL description-list term/definition
// classes. A value that fails to parse yields no date, never an error
// that aborts the batch.
func (de *DetailExtractor) extractEndDate(doc *goquery.Document) *time.Time {
	raw := ""

	doc.Find("dt").EachWithBreak(func(i int, dt *goquery.Selection) bool {
		if strings.Contains(cleanText(dt.Text()), endDateLabel) {
			raw = cleanText(dt.NextFiltered("dd").First().Text())
			return raw == ""
		}
		return true
	})

	if raw == "" {
		doc.Find(".ecl-description-list__term").EachWithBreak(func(i int, term *goquery.Selection) bool {
			if strings.Contains(cleanText(term.Text()), endDateLabel) {
				raw = cleanText(term.NextAllFiltered(".ecl-description-list__definition").First().Text())
				return raw == ""
			}
			return true
		})
	}

	if raw == "" {
		return nil
	}

	endDate, err := models.ParseEndDate(raw)
	if err != nil {
		de.logger.Debug().Str("raw", raw).Msg("End date value did not parse, leaving unset")
		return nil
	}
	return &endDate
}

// extractImageURL prefers the explicit social-preview meta tag and
// falls back to the first content image, resolving relative paths
// against the page URL.
func (de *DetailExtractor) extractImageURL(doc *goquery.Document, base *url.URL) string {
	if content, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		if imageURL, err := urlhandler.ResolveURL(content, base); err == nil {
			return imageURL
		}
	}

	fallback := ""
	doc.Find("main img, article img, img").EachWithBreak(func(i int, img *goquery.Selection) bool {
		src, ok := img.Attr("src")
		if !ok || strings.TrimSpace(src) == "" {
			return true
		}
		if imageURL, err := urlhandler.ResolveURL(src, base); err == nil {
			fallback = imageURL
			return false
		}
		return true
	})
	return fallback
}

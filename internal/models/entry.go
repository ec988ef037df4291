package models

import "time"

// Entry is one funding opportunity detected on the source site,
// normalized away from whatever format it was scraped out of.
type Entry struct {
	// ID is the stable identifier for the item: the canonical absolute
	// URL or a site-assigned numeric id. Two fetches of the same
	// underlying item must yield the same ID.
	ID string

	// Title is the display text. Extractors never emit an entry
	// without one.
	Title string

	// Summary is optional descriptive text.
	Summary string

	// EndDate is the application deadline, when the source exposes
	// one. Nil means unknown; an unknown end date never produces a
	// reminder.
	EndDate *time.Time

	// ImageURL is an optional absolute URL to a preview image.
	ImageURL string

	// Link is the absolute URL to the item's detail page. Extractors
	// never emit an entry without one.
	Link string
}

// EndDateString renders the end date in the canonical site format, or
// "" when unknown.
func (e *Entry) EndDateString() string {
	if e.EndDate == nil {
		return ""
	}
	return FormatEndDate(*e.EndDate)
}

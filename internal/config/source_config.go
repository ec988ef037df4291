package config

// SourceConfig describes the remote resource to monitor and how to
// read entries out of it.
type SourceConfig struct {
	URL         string            `json:"url,omitempty" yaml:"url,omitempty" validate:"required,url"`
	Format      string            `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,sourceformat"`
	Method      string            `json:"method,omitempty" yaml:"method,omitempty" validate:"omitempty,oneof=GET POST"`
	Headers     map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body        string            `json:"body,omitempty" yaml:"body,omitempty"`
	TimeoutSecs int               `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"omitempty,min=1"`
	UserAgent   string            `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`

	ListingSelectors ListingSelectors `json:"listing_selectors,omitempty" yaml:"listing_selectors,omitempty"`

	// MinSummaryLen is the minimum length for a paragraph to qualify
	// as the summary on a detail page. Shorter paragraphs are usually
	// metadata labels, not descriptions.
	MinSummaryLen int `json:"min_summary_len,omitempty" yaml:"min_summary_len,omitempty" validate:"omitempty,min=1"`
}

// ListingSelectors holds the CSS selectors for the listing-page
// strategy. The scraping strategy is deliberately configuration, not
// code: selector churn on the source site must not require touching
// the change detector.
type ListingSelectors struct {
	Container string `json:"container,omitempty" yaml:"container,omitempty"`
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Link      string `json:"link,omitempty" yaml:"link,omitempty"`
	Summary   string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Image     string `json:"image,omitempty" yaml:"image,omitempty"`
}

// NewDefaultSourceConfig creates default source configuration
func NewDefaultSourceConfig() SourceConfig {
	return SourceConfig{
		URL:         "",
		Format:      DefaultSourceFormat,
		Method:      DefaultSourceMethod,
		Headers:     make(map[string]string),
		TimeoutSecs: DefaultSourceTimeoutSecs,
		UserAgent:   DefaultSourceUserAgent,
		ListingSelectors: ListingSelectors{
			Container: DefaultListingContainer,
			Title:     DefaultListingTitle,
			Link:      DefaultListingLink,
			Summary:   DefaultListingSummary,
			Image:     DefaultListingImage,
		},
		MinSummaryLen: DefaultDetailMinSummaryLen,
	}
}

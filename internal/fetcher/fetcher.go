package fetcher

import (
	"context"
	"time"

	"fundwatch/internal/config"
	"fundwatch/internal/errorwrapper"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Fetcher retrieves remote resources over HTTP. It carries no retry
// logic: a failed run is simply retried by the next scheduled
// invocation, which re-fetches from scratch.
type Fetcher struct {
	client *resty.Client
	logger zerolog.Logger
}

// FetchInput holds parameters for Fetch. Method defaults to GET.
type FetchInput struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    string
}

// FetchResult holds the raw payload and response metadata.
type FetchResult struct {
	Body        []byte
	ContentType string
	StatusCode  int
}

// NewFetcher creates a Fetcher with timeout and identification from
// the source configuration.
func NewFetcher(cfg *config.SourceConfig, logger zerolog.Logger) *Fetcher {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if cfg.TimeoutSecs <= 0 {
		timeout = time.Duration(config.DefaultSourceTimeoutSecs) * time.Second
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultSourceUserAgent
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", userAgent)

	return &Fetcher{
		client: client,
		logger: logger.With().Str("component", "Fetcher").Logger(),
	}
}

// Fetch retrieves the resource described by input. It returns a
// NetworkError when the call itself fails (connection, DNS, timeout)
// and an HTTPError when the server answers with a non-2xx status.
func (f *Fetcher) Fetch(ctx context.Context, input FetchInput) (*FetchResult, error) {
	method := input.Method
	if method == "" {
		method = "GET"
	}

	req := f.client.R().SetContext(ctx).SetHeaders(input.Headers)
	if input.Body != "" {
		req.SetBody(input.Body)
	}

	resp, err := req.Execute(method, input.URL)
	if err != nil {
		f.logger.Error().Err(err).Str("url", input.URL).Msg("HTTP request failed")
		return nil, errorwrapper.NewNetworkError(input.URL, "HTTP request failed", err)
	}

	result := &FetchResult{
		Body:        resp.Body(),
		ContentType: resp.Header().Get("Content-Type"),
		StatusCode:  resp.StatusCode(),
	}

	if resp.IsError() {
		f.logger.Warn().Str("url", input.URL).Int("status_code", resp.StatusCode()).Msg("Received non-OK HTTP status")
		return result, errorwrapper.NewHTTPErrorWithURL(resp.StatusCode(), resp.Status(), input.URL)
	}

	f.logger.Debug().
		Str("url", input.URL).
		Str("content_type", result.ContentType).
		Int("size", len(result.Body)).
		Msg("Resource fetched successfully")
	return result, nil
}

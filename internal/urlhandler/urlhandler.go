package urlhandler

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL normalizes a URL string: ensures a scheme, lowercases
// the host, and strips the fragment. Entry ids are derived from
// normalized URLs so that the same item compares equal across runs.
func NormalizeURL(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", errors.New("URL is empty or only whitespace")
	}

	if !strings.Contains(trimmed, "://") && !strings.HasPrefix(trimmed, "//") {
		trimmed = "https://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("could not parse URL '%s': %w", trimmed, err)
	}
	if parsed.Host == "" {
		return "", errors.New("URL lacks a valid hostname")
	}

	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Fragment = ""

	return parsed.String(), nil
}

// ResolveURL resolves a (possibly relative) href against a base URL
// and normalizes the result. With a nil base the href must already be
// absolute.
func ResolveURL(href string, base *url.URL) (string, error) {
	trimmed := strings.TrimSpace(href)
	if trimmed == "" {
		return "", errors.New("href is empty")
	}

	var resolved *url.URL
	if base == nil {
		parsed, err := url.Parse(trimmed)
		if err != nil {
			return "", fmt.Errorf("error parsing base-less href '%s': %w", trimmed, err)
		}
		if !parsed.IsAbs() {
			return "", fmt.Errorf("cannot process relative URL '%s' without a base URL", trimmed)
		}
		resolved = parsed
	} else {
		parsed, err := base.Parse(trimmed)
		if err != nil {
			return "", fmt.Errorf("error resolving href '%s' with base '%s': %w", trimmed, base.String(), err)
		}
		resolved = parsed
	}

	return NormalizeURL(resolved.String())
}

// ValidateURLFormat checks that a string parses as an absolute HTTP or
// HTTPS URL. Used by config validation.
func ValidateURLFormat(rawURL string) error {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return fmt.Errorf("invalid URL '%s': %w", rawURL, err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return fmt.Errorf("URL '%s' must be absolute with a host", rawURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL '%s' must use http or https", rawURL)
	}
	return nil
}

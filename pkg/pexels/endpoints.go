package pexels

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// BaseURL is the base URL for the Pexels API
	BaseURL = "https://api.pexels.com/v1"

	// SearchEndpoint is the endpoint for photo search
	SearchEndpoint = "/search"

	// DefaultPerPage is the default page size for search requests
	DefaultPerPage = 15

	// MaxPerPage is the largest page size the service accepts
	MaxPerPage = 80
)

// SearchURL constructs the URL for a paginated photo search
func SearchURL(baseURL, query string, page, perPage int) string {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	} else if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", fmt.Sprintf("%d", page))
	params.Set("per_page", fmt.Sprintf("%d", perPage))

	return fmt.Sprintf("%s%s?%s", strings.TrimRight(baseURL, "/"), SearchEndpoint, params.Encode())
}

// SanitizeQuery trims surrounding whitespace from a search term
func SanitizeQuery(query string) string {
	return strings.TrimSpace(query)
}

// IsValidQuery checks whether a search term can be sent to the service
func IsValidQuery(query string) bool {
	return SanitizeQuery(query) != ""
}

// Package types defines the data structures used in the URL shortener service.
package types

// ShortenRequest is the body of a create-short-link request.
type ShortenRequest struct {
	URL string `json:"url"`
}

// ShortenResponse carries the full short link returned to the caller.
type ShortenResponse struct {
	URL string `json:"url"`
}

// ErrorResponse is the JSON error payload for client and server errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Mapping is a stored slug to target URL pair.
type Mapping struct {
	Slug      string
	TargetURL string
}

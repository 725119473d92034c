// Package validation screens candidate redirect targets.
package validation

import (
	"errors"
	"net/url"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidURL      = errors.New("invalid URL")
	ErrInvalidProtocol = errors.New("invalid URL protocol")
)

// URLValidator accepts absolute http and https URLs.
type URLValidator struct {
	validate *validator.Validate
}

// New returns a URLValidator.
func New() *URLValidator {
	return &URLValidator{validate: validator.New()}
}

// Validate parses candidate and returns it when it is an absolute URL with an
// http or https scheme and a host. The same check runs before a link is stored
// and again before a stored link is redirected to.
func (v *URLValidator) Validate(candidate string) (*url.URL, error) {
	if err := v.validate.Var(candidate, "required,url"); err != nil {
		return nil, ErrInvalidURL
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return nil, ErrInvalidURL
	}

	// url.Parse lowercases the scheme.
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, ErrInvalidProtocol
	}
	if parsed.Host == "" {
		return nil, ErrInvalidURL
	}
	return parsed, nil
}

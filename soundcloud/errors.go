// Package soundcloud implements the platform client: credential lifecycle,
// locator resolution, format classification and paged collection traversal.
package soundcloud

import (
	"errors"
	"fmt"
	"strings"

	"github.com/soundrip-cli/soundrip/source"
)

// ErrCredentialUnavailable signals that no replacement client id could be
// scraped from the platform's bootstrap assets. There is no further fallback.
var ErrCredentialUnavailable = errors.New("unable to extract client id")

// StatusError is an HTTP failure that carried a status code, as opposed to a
// network-level transport failure.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d (%s)", e.Code, e.URL)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// ResolutionError carries the platform-supplied error messages returned by
// the resolve indirection.
type ResolutionError struct {
	Messages []string
}

func (e *ResolutionError) Error() string {
	return "unable to resolve locator: " + strings.Join(e.Messages, ",")
}

// GeoRestrictedError marks a resource whose streams are access-blocked.
// The metadata record is still populated so the caller may show partial info.
type GeoRestrictedError struct {
	Track *source.Track
}

func (e *GeoRestrictedError) Error() string {
	return "resource is not available from your location (metadata only)"
}

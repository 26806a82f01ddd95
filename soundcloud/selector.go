package soundcloud

import (
	"strings"

	"github.com/samber/lo"
)

// DefaultFormats is the allow-list applied when the user configured none.
// It skips the preview-only variants the platform also advertises.
var DefaultFormats = []string{
	"http_aac", "hls_aac",
	"http_opus", "hls_opus",
	"http_mp3", "hls_mp3",
}

type formatPattern struct {
	protocol  string
	extension string
}

// Selector matches transcoding identities against the configured format
// patterns. A pattern is "<protocol>_<extension>" where either half may be
// the wildcard "*".
type Selector struct {
	patterns []formatPattern
}

// NewSelector compiles the given patterns. The literal "default" expands to
// DefaultFormats in place, and an empty list means DefaultFormats as well.
func NewSelector(patterns []string) *Selector {
	if len(patterns) == 0 {
		patterns = DefaultFormats
	}

	expanded := lo.FlatMap(patterns, func(p string, _ int) []string {
		if p == "default" {
			return DefaultFormats
		}

		return []string{p}
	})

	selector := &Selector{}
	for _, p := range expanded {
		protocol, extension := splitIdentity(p)
		selector.patterns = append(selector.patterns, formatPattern{protocol, extension})
	}

	return selector
}

// IsRequested reports whether the identity key, such as "hls_aac", is
// accepted by any configured pattern.
func (s *Selector) IsRequested(key string) bool {
	protocol, extension := splitIdentity(key)

	for _, p := range s.patterns {
		if wildcardEqual(p.protocol, protocol) && wildcardEqual(p.extension, extension) {
			return true
		}
	}

	return false
}

// splitIdentity cuts at the last underscore so protocols that contain one
// themselves, like "hls-aes", stay intact.
func splitIdentity(key string) (protocol, extension string) {
	index := strings.LastIndex(key, "_")
	if index < 0 {
		return key, ""
	}

	return key[:index], key[index+1:]
}

func wildcardEqual(pattern, value string) bool {
	return pattern == "*" || pattern == value
}

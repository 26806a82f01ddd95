package soundcloud

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/soundrip-cli/soundrip/source"
)

var (
	permalinkPattern = regexp.MustCompile(`^(?:https?://)?(?:(?:www|m)\.)?soundcloud\.com/(?P<uploader>[\w-]+)/(?P<slug>[\w-]+)(?:/(?P<token>[^?/]+))?/?$`)
	apiTrackPattern  = regexp.MustCompile(`^(?:https?://)?api(?:-v2)?\.soundcloud\.com/tracks/(?P<id>\d+)$`)
	playerPattern    = regexp.MustCompile(`^(?:https?://)?(?:w|player|p)\.soundcloud\.com/player/?$`)
	numericPattern   = regexp.MustCompile(`^\d+$`)
)

// reservedSlugs are permalink path segments that never denote a track.
var reservedSlugs = map[string]bool{
	"tracks":    true,
	"albums":    true,
	"sets":      true,
	"reposts":   true,
	"likes":     true,
	"spotlight": true,
	"comments":  true,
	"followers": true,
	"following": true,
	"stations":  true,
	"search":    true,
}

// trackLocator is a parsed reference to a single track: either a direct API
// endpoint or a canonical web URL to be resolved.
type trackLocator struct {
	infoURL     string
	secretToken string
}

// parseTrackLocator normalizes the supported locator shapes. Embedded player
// URLs are unwrapped to the resource they carry first.
func (c *Client) parseTrackLocator(locator string) (trackLocator, error) {
	locator = strings.TrimSpace(locator)

	if unwrapped, ok := unwrapPlayer(locator); ok {
		locator = unwrapped
	}

	raw, query := splitQuery(locator)

	if numericPattern.MatchString(raw) {
		return trackLocator{
			infoURL:     c.apiBase + "tracks/" + raw,
			secretToken: query.Get("secret_token"),
		}, nil
	}

	if match := apiTrackPattern.FindStringSubmatch(raw); match != nil {
		return trackLocator{
			infoURL:     c.apiBase + "tracks/" + match[1],
			secretToken: query.Get("secret_token"),
		}, nil
	}

	if match := permalinkPattern.FindStringSubmatch(raw); match != nil {
		uploader, slug, token := match[1], match[2], match[3]
		if reservedSlugs[slug] {
			return trackLocator{}, fmt.Errorf("locator %q does not reference a track", locator)
		}

		canonical := webBase + uploader + "/" + slug
		if token != "" {
			canonical += "/" + token
		}

		return trackLocator{
			infoURL:     c.resolveURL(canonical),
			secretToken: token,
		}, nil
	}

	return trackLocator{}, fmt.Errorf("unsupported locator %q", locator)
}

// resolveURL builds the resolve indirection for a canonical web URL.
func (c *Client) resolveURL(canonical string) string {
	return c.apiBase + "resolve?url=" + url.QueryEscape(canonical)
}

// ResolveTrack resolves any supported track locator into a full domain
// record with stream descriptors.
func (c *Client) ResolveTrack(locator string) (*source.Track, error) {
	parsed, err := c.parseTrackLocator(locator)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	if parsed.secretToken != "" {
		query.Set("secret_token", parsed.secretToken)
	}

	var payload trackPayload
	if err := c.getJSON(parsed.infoURL, query, &payload); err != nil {
		return nil, err
	}

	if len(payload.Errors) > 0 {
		return nil, &ResolutionError{Messages: errorMessages(payload.Errors)}
	}

	return c.extractTrack(&payload, parsed.secretToken, false)
}

// resolveUser resolves a user permalink or profile URL into its payload.
func (c *Client) resolveUser(locator string) (*userPayload, error) {
	locator = strings.TrimSpace(locator)

	raw, _ := splitQuery(locator)
	if !strings.Contains(raw, "soundcloud.com/") {
		raw = webBase + strings.Trim(raw, "/")
	}
	if !strings.HasPrefix(raw, "http") {
		raw = "https://" + raw
	}

	var payload userPayload
	if err := c.getJSON(c.resolveURL(raw), nil, &payload); err != nil {
		return nil, err
	}

	if len(payload.Errors) > 0 {
		return nil, &ResolutionError{Messages: errorMessages(payload.Errors)}
	}

	if payload.ID.String() == "" {
		return nil, fmt.Errorf("locator %q does not reference a user", locator)
	}

	return &payload, nil
}

// unwrapPlayer extracts the wrapped resource URL from an embedded player
// locator, appending the secret token when the embed carries one.
func unwrapPlayer(locator string) (string, bool) {
	parsed, err := url.Parse(locator)
	if err != nil {
		return "", false
	}

	base := parsed.Scheme + "://" + parsed.Host + parsed.Path
	if parsed.Scheme == "" {
		base = parsed.Host + parsed.Path
	}

	if !playerPattern.MatchString(base) {
		return "", false
	}

	wrapped := parsed.Query().Get("url")
	if wrapped == "" {
		return "", false
	}

	if token := parsed.Query().Get("secret_token"); token != "" {
		inner, err := url.Parse(wrapped)
		if err == nil {
			q := inner.Query()
			q.Set("secret_token", token)
			inner.RawQuery = q.Encode()
			wrapped = inner.String()
		}
	}

	return wrapped, true
}

// splitQuery separates a locator into its query-less form and query values.
func splitQuery(locator string) (string, url.Values) {
	raw, rawQuery, found := strings.Cut(locator, "?")
	if !found {
		return locator, url.Values{}
	}

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}

	return raw, query
}

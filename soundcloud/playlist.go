package soundcloud

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/soundrip-cli/soundrip/source"
)

var (
	setPattern    = regexp.MustCompile(`^(?:https?://)?(?:(?:www|m)\.)?soundcloud\.com/(?P<uploader>[\w-]+)/sets/(?P<slug>[\w-]+)(?:/(?P<token>[^?/]+))?/?$`)
	apiSetPattern = regexp.MustCompile(`^(?:https?://)?api(?:-v2)?\.soundcloud\.com/playlists/(?P<id>\d+)$`)
)

// ResolvePlaylist resolves a set locator into its track listing. Tracks are
// flat records; resolve each one to obtain its stream descriptors.
func (c *Client) ResolvePlaylist(locator string) (*source.Playlist, error) {
	locator = strings.TrimSpace(locator)
	if unwrapped, ok := unwrapPlayer(locator); ok {
		locator = unwrapped
	}

	raw, query := splitQuery(locator)
	secretToken := query.Get("secret_token")

	var infoURL string
	switch {
	case apiSetPattern.MatchString(raw):
		match := apiSetPattern.FindStringSubmatch(raw)
		infoURL = c.apiBase + "playlists/" + match[1]
	case setPattern.MatchString(raw):
		match := setPattern.FindStringSubmatch(raw)
		uploader, slug, token := match[1], match[2], match[3]

		canonical := webBase + uploader + "/sets/" + slug
		if token != "" {
			canonical += "/" + token
			secretToken = token
		}

		infoURL = c.resolveURL(canonical)
	default:
		return nil, fmt.Errorf("unsupported playlist locator %q", locator)
	}

	requestQuery := url.Values{}
	if secretToken != "" {
		requestQuery.Set("secret_token", secretToken)
	}

	var payload playlistPayload
	if err := c.getJSON(infoURL, requestQuery, &payload); err != nil {
		return nil, err
	}

	if len(payload.Errors) > 0 {
		return nil, &ResolutionError{Messages: errorMessages(payload.Errors)}
	}

	tracks, err := c.expandSetTracks(payload, secretToken)
	if err != nil {
		return nil, err
	}

	return &source.Playlist{
		ID:          payload.ID.String(),
		Title:       payload.Title,
		Description: payload.Description,
		Tracks:      tracks,
	}, nil
}

// expandSetTracks completes a set listing. Past a size threshold the set
// payload carries id-only stubs, which are hydrated in one bulk request.
func (c *Client) expandSetTracks(payload playlistPayload, secretToken string) ([]*source.Track, error) {
	stubs := lo.Filter(payload.Tracks, func(t trackPayload, _ int) bool {
		return t.PermalinkURL == "" && t.ID.String() != ""
	})

	hydrated := map[string]*trackPayload{}
	if len(stubs) > 0 {
		ids := lo.Map(stubs, func(t trackPayload, _ int) string {
			return t.ID.String()
		})

		query := url.Values{
			"ids":        []string{strings.Join(ids, ",")},
			"playlistId": []string{payload.ID.String()},
		}
		if secretToken != "" {
			query.Set("playlistSecretToken", secretToken)
		}

		var full []trackPayload
		if err := c.getJSON(c.apiBase+"tracks", query, &full); err != nil {
			return nil, fmt.Errorf("hydrate set tracks: %w", err)
		}

		for i := range full {
			hydrated[full[i].ID.String()] = &full[i]
		}
	}

	var tracks []*source.Track
	for i := range payload.Tracks {
		entry := &payload.Tracks[i]
		if entry.PermalinkURL == "" {
			full, ok := hydrated[entry.ID.String()]
			if !ok {
				continue
			}
			entry = full
		}

		tracks = append(tracks, flatTrack(entry))
	}

	return tracks, nil
}

package soundcloud

import (
	"encoding/json"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/soundrip-cli/soundrip/key"
	"github.com/soundrip-cli/soundrip/log"
	"github.com/soundrip-cli/soundrip/source"
)

// maxPageLimit is the largest page size the API honours.
const maxPageLimit = 200

// userCollections maps a user surface name to its endpoint, keyed to the
// numeric user id.
var userCollections = map[string]string{
	"all":       "stream/users/%s",
	"tracks":    "users/%s/tracks",
	"albums":    "users/%s/albums",
	"sets":      "users/%s/playlists",
	"reposts":   "stream/users/%s/reposts",
	"likes":     "users/%s/likes",
	"spotlight": "users/%s/spotlight",
}

// relatedCollections maps a relation name to its endpoint, keyed to the
// numeric track id.
var relatedCollections = map[string]string{
	"albums":      "tracks/%s/albums",
	"sets":        "tracks/%s/playlists_without_albums",
	"recommended": "tracks/%s/related",
}

var stationPattern = regexp.MustCompile(`soundcloud:track-stations:(\d+)`)

// UserCollectionNames lists the supported user surfaces.
func UserCollectionNames() []string {
	names := make([]string, 0, len(userCollections))
	for name := range userCollections {
		names = append(names, name)
	}

	return names
}

// RelatedCollectionNames lists the supported track relations.
func RelatedCollectionNames() []string {
	names := make([]string, 0, len(relatedCollections))
	for name := range relatedCollections {
		names = append(names, name)
	}

	return names
}

// UserCollection lazily yields flat track records from one of a user's
// surfaces, such as "tracks" or "likes".
func (c *Client) UserCollection(locator, surface string) (iter.Seq2[*source.Track, error], error) {
	endpoint, ok := userCollections[surface]
	if !ok {
		return nil, fmt.Errorf("unknown user collection %q", surface)
	}

	user, err := c.resolveUser(locator)
	if err != nil {
		return nil, err
	}

	return c.collect(c.apiBase+fmt.Sprintf(endpoint, user.ID), nil, 0), nil
}

// Related lazily yields tracks related to the given one: its albums, the
// sets it appears in, or algorithmic recommendations.
func (c *Client) Related(locator, relation string) (iter.Seq2[*source.Track, error], error) {
	endpoint, ok := relatedCollections[relation]
	if !ok {
		return nil, fmt.Errorf("unknown relation %q", relation)
	}

	track, err := c.parseTrackLocator(locator)
	if err != nil {
		return nil, err
	}

	var payload trackPayload
	if err := c.getJSON(track.infoURL, nil, &payload); err != nil {
		return nil, err
	}
	if len(payload.Errors) > 0 {
		return nil, &ResolutionError{Messages: errorMessages(payload.Errors)}
	}

	return c.collect(c.apiBase+fmt.Sprintf(endpoint, payload.ID), nil, 0), nil
}

// Station lazily yields the generated radio queue of a station locator.
// Station URLs resolve to a synthetic resource whose URI carries the actual
// track id.
func (c *Client) Station(locator string) (iter.Seq2[*source.Track, error], error) {
	raw, _ := splitQuery(strings.TrimSpace(locator))

	var id string
	if match := stationPattern.FindStringSubmatch(raw); match != nil {
		id = match[1]
	} else {
		var payload trackPayload
		if err := c.getJSON(c.resolveURL(raw), nil, &payload); err != nil {
			return nil, err
		}
		if len(payload.Errors) > 0 {
			return nil, &ResolutionError{Messages: errorMessages(payload.Errors)}
		}

		if match := stationPattern.FindStringSubmatch(payload.URI); match != nil {
			id = match[1]
		} else {
			id = payload.ID.String()
		}
	}

	return c.collect(c.apiBase+"stations/soundcloud:track-stations:"+id+"/tracks", nil, 0), nil
}

// collect walks a paged collection endpoint and yields flat track records.
// The first request carries the page parameters; afterwards the server's
// continuation URL is followed verbatim. Only 502 responses are retried,
// since the proxy layer sheds load with them while the cursor stays valid.
func (c *Client) collect(endpoint string, extra url.Values, limit int) iter.Seq2[*source.Track, error] {
	if limit <= 0 || limit > maxPageLimit {
		limit = viper.GetInt(key.NetworkPageLimit)
	}
	if limit <= 0 || limit > maxPageLimit {
		limit = maxPageLimit
	}

	return func(yield func(*source.Track, error) bool) {
		query := url.Values{
			"limit":               []string{strconv.Itoa(limit)},
			"linked_partitioning": []string{"1"},
			"offset":              []string{"0"},
		}
		for name, values := range extra {
			query[name] = values
		}

		attempts := viper.GetInt(key.NetworkRetries)
		next := endpoint

		for next != "" {
			page, err := withRetry(attempts, func(err error) bool {
				if IsStatus(err, http.StatusBadGateway) {
					log.Warn("got a bad gateway fetching a collection page, retrying")
					return true
				}

				return false
			}, func() (collectionPage, error) {
				var p collectionPage
				return p, c.getJSON(next, query, &p)
			})
			if err != nil {
				yield(nil, err)
				return
			}

			for _, raw := range page.Collection {
				track := resolveEntry(raw)
				if track == nil {
					continue
				}

				if !yield(track, nil) {
					return
				}
			}

			// The continuation cursor encodes its own offset.
			next = page.NextHref
			query.Del("offset")
		}
	}
}

// resolveEntry finds the track payload within a page entry. Entries wrap it
// differently per endpoint: directly, under "track" for reposts and likes,
// or under "playlist" for set surfaces. Entries without a permalink are
// unusable and skipped.
func resolveEntry(raw json.RawMessage) *source.Track {
	var item collectionItem
	if err := json.Unmarshal(raw, &item); err != nil {
		log.Warnf("skipping malformed collection entry: %v", err)
		return nil
	}

	for _, candidate := range []*trackPayload{&item.trackPayload, item.Track, item.Playlist} {
		if candidate == nil || candidate.PermalinkURL == "" {
			continue
		}

		return flatTrack(candidate)
	}

	return nil
}

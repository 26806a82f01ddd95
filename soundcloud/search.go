package soundcloud

import (
	"iter"
	"net/url"

	"github.com/spf13/viper"

	"github.com/soundrip-cli/soundrip/key"
	"github.com/soundrip-cli/soundrip/source"
)

// defaultSearchLimit applies when neither the caller nor the configuration
// bound the result count.
const defaultSearchLimit = 50

// Search lazily yields up to limit flat track records matching the query.
// A limit of 0 falls back to the configured default; the page size is capped
// by the API regardless.
func (c *Client) Search(query string, limit int) iter.Seq2[*source.Track, error] {
	if limit <= 0 {
		limit = viper.GetInt(key.SearchLimit)
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	pageSize := min(limit, maxPageLimit)
	matches := c.collect(c.apiBase+"search/tracks", url.Values{"q": []string{query}}, pageSize)

	return func(yield func(*source.Track, error) bool) {
		remaining := limit
		for track, err := range matches {
			if !yield(track, err) || err != nil {
				return
			}

			remaining--
			if remaining == 0 {
				return
			}
		}
	}
}

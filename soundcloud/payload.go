package soundcloud

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"
)

// trackPayload mirrors the API's track object. Counter fields are declared
// as any because the API serves them inconsistently as numbers or strings.
type trackPayload struct {
	ID           json.Number  `json:"id"`
	Kind         string       `json:"kind"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	PermalinkURL string       `json:"permalink_url"`
	URI          string       `json:"uri"`
	CreatedAt    string       `json:"created_at"`
	Duration     float64      `json:"duration"`
	License      string       `json:"license"`
	Genre        string       `json:"genre"`
	ArtworkURL   string       `json:"artwork_url"`
	Policy       string       `json:"policy"`
	User         userPayload  `json:"user"`
	Media        mediaPayload `json:"media"`

	Downloadable     bool `json:"downloadable"`
	HasDownloadsLeft bool `json:"has_downloads_left"`

	PlaybackCount    any `json:"playback_count"`
	FavoritingsCount any `json:"favoritings_count"`
	LikesCount       any `json:"likes_count"`
	CommentCount     any `json:"comment_count"`
	RepostsCount     any `json:"reposts_count"`

	Errors []errorMessage `json:"errors"`
}

type userPayload struct {
	ID           json.Number    `json:"id"`
	Username     string         `json:"username"`
	Permalink    string         `json:"permalink"`
	PermalinkURL string         `json:"permalink_url"`
	AvatarURL    string         `json:"avatar_url"`
	Errors       []errorMessage `json:"errors"`
}

type mediaPayload struct {
	Transcodings []Transcoding `json:"transcodings"`
}

type playlistPayload struct {
	ID           json.Number    `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	PermalinkURL string         `json:"permalink_url"`
	User         userPayload    `json:"user"`
	Tracks       []trackPayload `json:"tracks"`
	Errors       []errorMessage `json:"errors"`
}

type errorMessage struct {
	Message string `json:"error_message"`
}

func errorMessages(errors []errorMessage) []string {
	messages := make([]string, 0, len(errors))
	for _, e := range errors {
		messages = append(messages, e.Message)
	}

	return messages
}

// streamPayload is the answer of a transcoding indirection.
type streamPayload struct {
	URL string `json:"url"`
}

// downloadPayload is the answer of the original-file download endpoint.
type downloadPayload struct {
	RedirectURI string `json:"redirectUri"`
}

type collectionPage struct {
	Collection []json.RawMessage `json:"collection"`
	NextHref   string            `json:"next_href"`
}

// collectionItem is one page entry. Depending on the endpoint the track
// payload sits at the top level or nested under track or playlist.
type collectionItem struct {
	trackPayload
	Track    *trackPayload `json:"track"`
	Playlist *trackPayload `json:"playlist"`
}

// countOrNone coerces a counter the API served as a number or numeric string.
// Anything else, including absence, stays None rather than becoming zero.
func countOrNone(value any) mo.Option[int64] {
	switch v := value.(type) {
	case float64:
		return mo.Some(int64(v))
	case string:
		trimmed := strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return mo.Some(n)
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return mo.Some(n)
		}
	}

	return mo.None[int64]()
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006/01/02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp tries the upload date layouts the API has been seen using.
// An unparsable value yields the zero time, which marshals away.
func parseTimestamp(value string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}

	return time.Time{}
}

// Package source defines the domain models for resolved media resources.
package source

import (
	"time"

	"github.com/samber/mo"
)

// Track is the canonical metadata record produced by one extraction.
// A fresh record is created per call; nothing is shared across extractions.
type Track struct {
	// Platform numeric identifier, stringified.
	ID string `json:"id"`
	// Display title.
	Title string `json:"title"`
	// Free-form description, may be empty.
	Description string `json:"description,omitempty"`
	// Uploading user.
	Uploader    string `json:"uploader,omitempty"`
	UploaderID  string `json:"uploader_id,omitempty"`
	UploaderURL string `json:"uploader_url,omitempty"`
	// Upload time, zero when the platform omitted or mangled it.
	Timestamp time.Time `json:"timestamp,omitzero"`
	// Duration in seconds.
	Duration float64 `json:"duration,omitempty"`
	// Canonical web page for the resource.
	WebpageURL string   `json:"webpage_url,omitempty"`
	License    string   `json:"license,omitempty"`
	Genres     []string `json:"genres,omitempty"`

	Thumbnails []*Thumbnail `json:"thumbnails,omitempty"`

	// Streams is nil in flat (listing-only) extractions.
	Streams []*Stream `json:"streams"`

	// Aggregate counters. Absent counters stay None and marshal to null,
	// never zero.
	ViewCount    mo.Option[int64] `json:"view_count"`
	LikeCount    mo.Option[int64] `json:"like_count"`
	CommentCount mo.Option[int64] `json:"comment_count"`
	RepostCount  mo.Option[int64] `json:"repost_count"`
}

// String returns the canonical display representation of the track.
func (t *Track) String() string {
	if t.Uploader != "" {
		return t.Uploader + " - " + t.Title
	}
	return t.Title
}

package history

import (
	"fmt"
	"time"

	"github.com/soundrip-cli/soundrip/source"
)

// SavedTrack represents a single resolved track preserved in the user's history.
type SavedTrack struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Uploader    string    `json:"uploader"`
	WebpageURL  string    `json:"webpage_url"`
	Duration    float64   `json:"duration"`
	StreamCount int       `json:"stream_count"`
	ResolvedAt  time.Time `json:"resolved_at"`

	// Track carries the full record when populated at runtime; not persisted to disk.
	Track *source.Track `json:"-"`
}

func (s *SavedTrack) encode() string {
	return fmt.Sprintf("%s (%s)", s.Title, s.ID)
}

func (s *SavedTrack) String() string {
	if s.Uploader != "" {
		return fmt.Sprintf("%s - %s", s.Uploader, s.Title)
	}
	return s.Title
}

func newSavedTrack(track *source.Track) *SavedTrack {
	return &SavedTrack{
		ID:          track.ID,
		Title:       track.Title,
		Uploader:    track.Uploader,
		WebpageURL:  track.WebpageURL,
		Duration:    track.Duration,
		StreamCount: len(track.Streams),
	}
}

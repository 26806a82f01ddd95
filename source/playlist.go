// Package source defines the domain models for resolved media resources.
package source

// Playlist groups the tracks of a set, album or other curated collection.
type Playlist struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Tracks      []*Track `json:"tracks"`
}

// String returns the playlist title.
func (p *Playlist) String() string {
	return p.Title
}

// Package source defines the domain models for resolved media resources.
package source

// Thumbnail is a single artwork variant, optionally sized.
type Thumbnail struct {
	// Named size identifier (e.g. "t500x500", "original"); empty for
	// unsized single thumbnails.
	ID  string `json:"id,omitempty"`
	URL string `json:"url"`
	// Pixel dimensions, 0 when the variant is unsized.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
	// Preference orders variants; the uncropped original ranks highest.
	Preference int `json:"preference,omitempty"`
}

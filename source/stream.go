// Package source defines the domain models for resolved media resources.
package source

// Stream represents a single downloadable stream descriptor.
type Stream struct {
	// Deterministic identity, unique per track among returned descriptors
	// (e.g. "hls_aac_256", "http_mp3_preview", "download").
	FormatID string `json:"format_id"`
	// Signed playable URL.
	URL string `json:"url"`
	// Delivery protocol: "http", "hls" or "hls-aes".
	Protocol string `json:"protocol"`
	// Container extension (e.g. "mp3", "aac", "opus").
	Extension string `json:"extension"`
	// Average bitrate in kbit/s, 0 when unknown.
	Bitrate int `json:"bitrate,omitempty"`
	// Relative quality rank. The original downloadable asset ranks above
	// every transcoding.
	Quality int `json:"quality"`
	// Previews sort below every full-length variant.
	Preference int `json:"preference,omitempty"`
	// Preview marks a deliberately truncated, non-authoritative variant.
	Preview bool `json:"preview,omitempty"`
	// Note is a human-facing qualifier ("Original", "Premium").
	Note string `json:"note,omitempty"`
	// Filesize in bytes when the platform disclosed one.
	Filesize int64 `json:"filesize,omitempty"`
	// Vcodec is always "none": the platform serves audio-only streams.
	Vcodec string `json:"vcodec"`
}

// String returns the descriptor identity for display.
func (s *Stream) String() string {
	return s.FormatID
}

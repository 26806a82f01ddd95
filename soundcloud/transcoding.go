package soundcloud

import (
	"mime"
	"regexp"
	"strings"
)

const (
	ProtocolHTTP   = "http"
	ProtocolHLS    = "hls"
	ProtocolHLSAES = "hls-aes"
)

// Transcoding is the platform-supplied descriptor of one encoded variant of
// a track. Its URL is an indirection that still has to be exchanged for the
// actual stream location.
type Transcoding struct {
	URL     string            `json:"url"`
	Preset  string            `json:"preset"`
	Snipped bool              `json:"snipped"`
	Format  TranscodingFormat `json:"format"`
}

type TranscodingFormat struct {
	Protocol string `json:"protocol"`
	MimeType string `json:"mime_type"`
}

// Identity is the normalized classification of a transcoding.
type Identity struct {
	Protocol  string
	Extension string
	Bitrate   int
	Preview   bool
}

// Key is the "<protocol>_<extension>" form matched against the format
// allow-list. Empty parts are dropped.
func (i Identity) Key() string {
	return joinNonEmpty("_", i.Protocol, i.Extension)
}

var knownExtensions = map[string]bool{
	"mp3":  true,
	"aac":  true,
	"m4a":  true,
	"opus": true,
	"ogg":  true,
	"oga":  true,
	"wav":  true,
	"flac": true,
	"mp4":  true,
	"webm": true,
}

// Classify derives the identity of a transcoding from its declared protocol,
// preset and mime type. Announcements are not always consistent, so the
// indirection URL is consulted as a tie-breaker.
func Classify(t Transcoding) Identity {
	protocol := t.Format.Protocol

	if protocol == "progressive" {
		protocol = ProtocolHTTP
	}

	if protocol != ProtocolHLS && strings.Contains(t.URL, "/hls") {
		protocol = ProtocolHLS
	}

	if protocol == "encrypted-hls" || strings.Contains(t.URL, "/encrypted-hls") {
		protocol = ProtocolHLSAES
	}

	var extension string
	if t.Preset != "" {
		head, _, _ := strings.Cut(t.Preset, "_")
		if knownExtensions[head] {
			extension = head
		}
	}

	if extension == "" {
		extension = extensionFromMime(t.Format.MimeType)
	}

	return Identity{
		Protocol:  protocol,
		Extension: extension,
		Preview:   t.Snipped || strings.Contains(t.URL, "/preview/"),
	}
}

var mimeExtensions = map[string]string{
	"audio/mpeg":  "mp3",
	"audio/mp4":   "m4a",
	"audio/aac":   "aac",
	"audio/wav":   "wav",
	"audio/x-wav": "wav",
	"audio/flac":  "flac",
}

// extensionFromMime maps a mime type to a file extension. Ogg containers
// are disambiguated by their codecs parameter.
func extensionFromMime(mimeType string) string {
	mediaType, params, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return ""
	}

	if mediaType == "audio/ogg" {
		if strings.Contains(params["codecs"], "opus") {
			return "opus"
		}

		return "ogg"
	}

	return mimeExtensions[mediaType]
}

var (
	// streamURLPattern sniffs ".<bitrate>.<ext>" out of a final stream URL
	// to backfill fields the announcement left blank.
	streamURLPattern = regexp.MustCompile(`\.(\d+)\.([0-9a-z]{3,4})[/?]`)

	// previewStreamPattern recognizes the thirty second clip segments that
	// are served in place of the full stream for restricted tracks.
	previewStreamPattern = regexp.MustCompile(`/(?:preview|playlist)/0/30/`)
)

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}

	return strings.Join(kept, sep)
}

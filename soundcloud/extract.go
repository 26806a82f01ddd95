package soundcloud

import (
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/mo"
	"github.com/spf13/viper"

	"github.com/soundrip-cli/soundrip/key"
	"github.com/soundrip-cli/soundrip/log"
	"github.com/soundrip-cli/soundrip/source"
)

// artworkSizes enumerates the named artwork variants the CDN serves for any
// uploaded image, ordered small to large. Size 0 means unsized.
var artworkSizes = []struct {
	id   string
	size int
}{
	{"mini", 16},
	{"tiny", 20},
	{"small", 32},
	{"badge", 47},
	{"t67x67", 67},
	{"large", 100},
	{"t300x300", 300},
	{"crop", 400},
	{"t500x500", 500},
	{"original", 0},
}

var artworkSizePattern = regexp.MustCompile(`-([0-9a-z]+)\.jpg`)

// extractTrack turns a track payload into a domain record. When flat is set
// only listing metadata is produced and no further requests are made.
func (c *Client) extractTrack(payload *trackPayload, secretToken string, flat bool) (*source.Track, error) {
	track := flatTrack(payload)

	if flat {
		return track, nil
	}

	query := url.Values{}
	if secretToken != "" {
		query.Set("secret_token", secretToken)
	}

	seen := map[string]bool{}
	var streams []*source.Stream

	if viper.GetBool(key.NetworkDownloadProbes) && payload.Downloadable && payload.HasDownloadsLeft {
		if s := c.probeOriginalDownload(payload.ID.String(), query); s != nil {
			seen[s.URL] = true
			streams = append(streams, s)
		}
	}

	attempts := viper.GetInt(key.NetworkRetries)
	for _, transcoding := range payload.Media.Transcodings {
		if transcoding.URL == "" {
			continue
		}

		identity := Classify(transcoding)
		if !c.selector.IsRequested(identity.Key()) {
			log.Debugf("skipping format %s: not requested", identity.Key())
			continue
		}

		stream, err := withRetry(attempts, func(err error) bool {
			if IsStatus(err, http.StatusTooManyRequests) {
				c.warnThrottled()
				return true
			}

			return false
		}, func() (streamPayload, error) {
			var s streamPayload
			return s, c.getJSON(transcoding.URL, query, &s)
		})
		if err != nil {
			log.Warnf("resolve stream %s for track %s: %v", identity.Key(), payload.ID, err)
			continue
		}

		if stream.URL == "" || seen[stream.URL] {
			continue
		}
		seen[stream.URL] = true

		streams = append(streams, buildStream(identity, stream.URL))
	}

	track.Streams = streams

	if len(streams) == 0 && payload.Policy == "BLOCK" {
		return track, &GeoRestrictedError{Track: track}
	}

	return track, nil
}

// flatTrack maps the metadata-only part of a payload, leaving Streams nil.
func flatTrack(payload *trackPayload) *source.Track {
	user := payload.User

	uploaderID := user.ID.String()
	if uploaderID == "" || uploaderID == "0" {
		uploaderID = user.Permalink
	}

	track := &source.Track{
		ID:           payload.ID.String(),
		Title:        payload.Title,
		Description:  payload.Description,
		Uploader:     user.Username,
		UploaderID:   uploaderID,
		UploaderURL:  user.PermalinkURL,
		Timestamp:    parseTimestamp(payload.CreatedAt),
		Duration:     payload.Duration / 1000,
		WebpageURL:   payload.PermalinkURL,
		License:      payload.License,
		Thumbnails:   thumbnails(payload.ArtworkURL, user.AvatarURL),
		ViewCount:    countOrNone(payload.PlaybackCount),
		LikeCount:    firstCount(payload.FavoritingsCount, payload.LikesCount),
		CommentCount: countOrNone(payload.CommentCount),
		RepostCount:  countOrNone(payload.RepostsCount),
	}

	if payload.Genre != "" {
		track.Genres = []string{payload.Genre}
	}

	return track
}

func firstCount(values ...any) mo.Option[int64] {
	for _, v := range values {
		if count := countOrNone(v); count.IsPresent() {
			return count
		}
	}

	return mo.None[int64]()
}

// thumbnails expands a single artwork URL into every size variant the CDN
// serves. The uploader avatar substitutes for missing artwork.
func thumbnails(artworkURL, avatarURL string) []*source.Thumbnail {
	original := artworkURL
	if original == "" {
		original = avatarURL
	}

	if original == "" {
		return nil
	}

	if !artworkSizePattern.MatchString(original) {
		return []*source.Thumbnail{{URL: original}}
	}

	var variants []*source.Thumbnail
	for _, v := range artworkSizes {
		size := v.size

		// Avatars have no 20px variant, only 18px.
		if v.id == "tiny" && artworkURL == "" {
			size = 18
		}

		thumbnail := &source.Thumbnail{
			ID:     v.id,
			URL:    artworkSizePattern.ReplaceAllString(original, "-"+v.id+".jpg"),
			Width:  size,
			Height: size,
		}

		if v.id == "original" {
			thumbnail.Preference = 10
		}

		variants = append(variants, thumbnail)
	}

	return variants
}

// buildStream finalises a descriptor from a classified identity and the
// signed stream URL, backfilling bitrate and extension from the URL itself.
func buildStream(identity Identity, streamURL string) *source.Stream {
	if match := streamURLPattern.FindStringSubmatch(streamURL); match != nil {
		if identity.Bitrate == 0 {
			identity.Bitrate, _ = strconv.Atoi(match[1])
		}

		if identity.Extension == "" {
			identity.Extension = match[2]
		}
	}

	preview := identity.Preview || previewStreamPattern.MatchString(streamURL)

	parts := []string{identity.Protocol, identity.Extension}
	if identity.Bitrate > 0 {
		parts = append(parts, strconv.Itoa(identity.Bitrate))
	}
	if preview {
		parts = append(parts, "preview")
	}

	stream := &source.Stream{
		FormatID:  joinNonEmpty("_", parts...),
		URL:       streamURL,
		Protocol:  identity.Protocol,
		Extension: identity.Extension,
		Bitrate:   identity.Bitrate,
		Preview:   preview,
		Vcodec:    "none",
	}

	if identity.Extension == "aac" {
		stream.Bitrate = 256
		stream.Quality = 5
		stream.Note = "Premium"
	}

	if preview {
		stream.Preference = -10
	}

	return stream
}

// probeOriginalDownload checks whether the uploader-provided original file is
// still claimable and, if so, describes it. Failures are not fatal since the
// transcodings remain available.
func (c *Client) probeOriginalDownload(trackID string, query url.Values) *source.Stream {
	var download downloadPayload
	if err := c.getJSON(c.apiBase+"tracks/"+trackID+"/download", query, &download); err != nil {
		log.Warnf("probe original download for track %s: %v", trackID, err)
		return nil
	}

	if download.RedirectURI == "" {
		return nil
	}

	request, err := http.NewRequest(http.MethodHead, download.RedirectURI, nil)
	if err != nil {
		return nil
	}

	response, err := c.http.Do(request)
	if err != nil {
		log.Warnf("probe original download for track %s: %v", trackID, err)
		return nil
	}
	response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		return nil
	}

	finalURL := download.RedirectURI
	if response.Request != nil && response.Request.URL != nil {
		finalURL = response.Request.URL.String()
	}

	return &source.Stream{
		FormatID:  "download",
		URL:       finalURL,
		Protocol:  ProtocolHTTP,
		Extension: downloadExtension(finalURL, response.Header.Get("Content-Type")),
		Quality:   10,
		Note:      "Original",
		Filesize:  max(response.ContentLength, 0),
		Vcodec:    "none",
	}
}

// downloadExtension detects the container of an original file from its URL,
// falling back to the response content type and finally to mp3.
func downloadExtension(rawURL, contentType string) string {
	if parsed, err := url.Parse(rawURL); err == nil {
		if ext := strings.TrimPrefix(path.Ext(parsed.Path), "."); knownExtensions[ext] {
			return ext
		}
	}

	if ext := extensionFromMime(contentType); ext != "" {
		return ext
	}

	return "mp3"
}

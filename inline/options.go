// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/soundrip-cli/soundrip/soundcloud"
	"github.com/soundrip-cli/soundrip/source"
	"github.com/soundrip-cli/soundrip/util"
)

type (
	TrackPicker  func([]*source.Track) *source.Track
	StreamFilter func([]*source.Stream) ([]*source.Stream, error)
)

type Options struct {
	Out    io.Writer
	Client *soundcloud.Client

	Json bool

	// Query searches the platform; Locator resolves a single resource.
	// Exactly one of the two is expected.
	Query   string
	Locator string

	TrackPicker  mo.Option[TrackPicker]
	StreamFilter mo.Option[StreamFilter]

	// Streams requests full resolution of the picked tracks, including
	// their stream descriptors.
	Streams bool

	Limit int
}

func ParseTrackPicker(kind, value string) (TrackPicker, error) {
	switch kind {
	case "first":
		return func(tracks []*source.Track) *source.Track {
			if len(tracks) == 0 {
				return nil
			}
			return tracks[0]
		}, nil
	case "last":
		return func(tracks []*source.Track) *source.Track {
			if len(tracks) == 0 {
				return nil
			}
			return tracks[len(tracks)-1]
		}, nil
	case "exact":
		return func(tracks []*source.Track) *source.Track {
			for _, t := range tracks {
				if t.Title == value {
					return t
				}
			}
			return nil
		}, nil
	case "index":
		idx, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(tracks []*source.Track) *source.Track {
			if len(tracks) == 0 {
				return nil
			}
			i := util.Min(idx, uint64(len(tracks)-1))
			return tracks[i]
		}, nil
	default:
		return nil, fmt.Errorf("unknown picker type: %s", kind)
	}
}

// ParseStreamFilter parses a string description of a stream filter.
// Format: "all", "best", "1-5", "@substring@", an exact format id or an index.
func ParseStreamFilter(description string) (StreamFilter, error) {
	if description == "all" {
		return func(streams []*source.Stream) ([]*source.Stream, error) {
			return streams, nil
		}, nil
	}

	if description == "best" {
		return func(streams []*source.Stream) ([]*source.Stream, error) {
			if len(streams) == 0 {
				return streams, nil
			}

			sorted := make([]*source.Stream, len(streams))
			copy(sorted, streams)
			sort.SliceStable(sorted, func(i, j int) bool {
				if sorted[i].Preference != sorted[j].Preference {
					return sorted[i].Preference > sorted[j].Preference
				}
				if sorted[i].Quality != sorted[j].Quality {
					return sorted[i].Quality > sorted[j].Quality
				}
				return sorted[i].Bitrate > sorted[j].Bitrate
			})

			return sorted[:1], nil
		}, nil
	}

	// Range: "1-5"
	if strings.Contains(description, "-") {
		parts := strings.Split(description, "-")
		if len(parts) == 2 {
			from, err1 := strconv.ParseUint(parts[0], 10, 16)
			to, err2 := strconv.ParseUint(parts[1], 10, 16)
			if err1 == nil && err2 == nil {
				return func(streams []*source.Stream) ([]*source.Stream, error) {
					start := util.Min(from, uint64(len(streams)))
					end := util.Min(to+1, uint64(len(streams)))
					if start > end {
						return []*source.Stream{}, nil
					}
					return streams[start:end], nil
				}, nil
			}
		}
	}

	// Substring: "@text@"
	if strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") {
		sub := description[1 : len(description)-1]
		return func(streams []*source.Stream) ([]*source.Stream, error) {
			return lo.Filter(streams, func(s *source.Stream, _ int) bool {
				return strings.Contains(strings.ToLower(s.FormatID), strings.ToLower(sub))
			}), nil
		}, nil
	}

	// Single index: "5"
	if idx, err := strconv.ParseUint(description, 10, 16); err == nil {
		return func(streams []*source.Stream) ([]*source.Stream, error) {
			if uint64(len(streams)) <= idx {
				return []*source.Stream{}, nil
			}
			return []*source.Stream{streams[idx]}, nil
		}, nil
	}

	// Exact format id: "hls_aac_256"
	return func(streams []*source.Stream) ([]*source.Stream, error) {
		return lo.Filter(streams, func(s *source.Stream, _ int) bool {
			return s.FormatID == description
		}), nil
	}, nil
}

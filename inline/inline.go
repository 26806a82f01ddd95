// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"errors"
	"fmt"
	"os"

	"github.com/soundrip-cli/soundrip/history"
	"github.com/soundrip-cli/soundrip/key"
	"github.com/soundrip-cli/soundrip/log"
	"github.com/soundrip-cli/soundrip/query"
	"github.com/soundrip-cli/soundrip/soundcloud"
	"github.com/soundrip-cli/soundrip/source"
	"github.com/spf13/viper"
)

func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	// Step 1: Gather candidate tracks, from a search or a direct locator.
	tracks, err := gather(options)
	if err != nil {
		return err
	}

	// Step 2: Apply track selection logic if a picker is defined.
	var selected []*source.Track
	if options.TrackPicker.IsPresent() {
		picker := options.TrackPicker.MustGet()
		if choice := picker(tracks); choice != nil {
			selected = []*source.Track{choice}
		}
	} else {
		selected = tracks
	}

	if len(selected) == 0 {
		if options.Json {
			return writeJson(options.Out, []*source.Track{}, options)
		}
		return nil // Nothing found
	}

	// Step 3: Resolve stream descriptors for the selected subset.
	if options.Streams {
		for i, track := range selected {
			prepared, err := prepareTrack(track, options)
			if err != nil {
				return err
			}
			selected[i] = prepared
		}
	}

	// Step 4: Dispatch the processed results to the configured output writer.
	if options.Json {
		return writeJson(options.Out, selected, options)
	}

	for _, track := range selected {
		if options.Streams && len(track.Streams) > 0 {
			for _, stream := range track.Streams {
				fmt.Fprintln(options.Out, stream.URL)
			}
		} else {
			fmt.Fprintln(options.Out, track.WebpageURL)
		}
	}

	return nil
}

// gather collects candidate tracks. A locator yields a single record; a
// query yields flat search results.
func gather(options *Options) ([]*source.Track, error) {
	if options.Locator != "" {
		track, err := options.Client.ResolveTrack(options.Locator)

		var restricted *soundcloud.GeoRestrictedError
		if errors.As(err, &restricted) {
			log.Warnf("track %s is unavailable from this location", restricted.Track.ID)
			return []*source.Track{restricted.Track}, nil
		}
		if err != nil {
			return nil, err
		}

		if viper.GetBool(key.HistorySaveOnResolve) {
			if err := history.Save(track); err != nil {
				log.Warnf("save history: %v", err)
			}
		}

		return []*source.Track{track}, nil
	}

	if err := query.Remember(options.Query, 1); err != nil {
		log.Warnf("remember query: %v", err)
	}

	var tracks []*source.Track
	for track, err := range options.Client.Search(options.Query, options.Limit) {
		if err != nil {
			return nil, fmt.Errorf("search failed for %q: %w", options.Query, err)
		}
		tracks = append(tracks, track)
	}

	return tracks, nil
}

// prepareTrack upgrades a flat record into a fully resolved one and applies
// the configured stream filter.
func prepareTrack(track *source.Track, options *Options) (*source.Track, error) {
	// A locator resolution already carries its streams.
	if track.Streams == nil && track.WebpageURL != "" {
		resolved, err := options.Client.ResolveTrack(track.WebpageURL)

		var restricted *soundcloud.GeoRestrictedError
		if errors.As(err, &restricted) {
			log.Warnf("track %s is unavailable from this location", restricted.Track.ID)
			resolved = restricted.Track
		} else if err != nil {
			return nil, err
		}

		track = resolved
	}

	if options.StreamFilter.IsPresent() {
		filter := options.StreamFilter.MustGet()
		filtered, err := filter(track.Streams)
		if err != nil {
			return nil, err
		}
		track.Streams = filtered
	}

	return track, nil
}

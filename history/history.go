// Package history provides the implementation for tracking and persisting resolved resources.
package history

import (
	"time"

	"github.com/metafates/gache"
	"github.com/soundrip-cli/soundrip/filesystem"
	"github.com/soundrip-cli/soundrip/source"
	"github.com/soundrip-cli/soundrip/where"
)

// cacher provides an abstracted, disk-backed registry for resolution records.
var cacher = gache.New[map[string]*SavedTrack](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of historical resolution records from the persistent store.
func Get() (map[string]*SavedTrack, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedTrack), nil
	}
	return cached, nil
}

// Save persists a resolved track to the history registry, refreshing the resolution time on re-resolution.
func Save(track *source.Track) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newSavedTrack(track)
	record.ResolvedAt = time.Now().UTC()

	saved[record.encode()] = record

	return cacher.Set(saved)
}

// Remove permanently deletes a specific resolution record from the history registry.
func Remove(record *SavedTrack) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, record.encode())
	return cacher.Set(saved)
}

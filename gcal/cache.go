package gcal

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"slices"
	"time"

	"expoadmin/combo"
)

const (
	cacheFile = "calendars_cache.json"
	cacheTTL  = 24 * time.Hour
)

// OptionsCache is the on-disk copy of the calendar options.
type OptionsCache struct {
	CalendarIDs []string       `json:"calendar_ids"`
	Options     []combo.Option `json:"options"`
	Timestamp   time.Time      `json:"timestamp"`
}

// SaveOptionsCache stores the options built for ids with the current time.
func SaveOptionsCache(ids []string, options []combo.Option) error {
	cachePath, err := Path(cacheFile)
	if err != nil {
		return err
	}

	cache := OptionsCache{
		CalendarIDs: ids,
		Options:     options,
		Timestamp:   time.Now(),
	}

	f, err := os.OpenFile(cachePath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(cache)
}

// LoadOptionsCache returns the options cached for ids and whether they are
// younger than a day. Stale options are still returned.
func LoadOptionsCache(ids []string) ([]combo.Option, bool) {
	cachePath, err := Path(cacheFile)
	if err != nil {
		return nil, false
	}

	f, err := os.Open(cachePath)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var cache OptionsCache
	if err := json.NewDecoder(f).Decode(&cache); err != nil {
		return nil, false
	}

	if !slices.Equal(cache.CalendarIDs, ids) {
		return nil, false
	}

	if time.Since(cache.Timestamp) > cacheTTL {
		return cache.Options, false
	}
	return cache.Options, true
}

// ClearOptionsCache removes the cache file. A missing file is not an error.
func ClearOptionsCache() error {
	cachePath, err := Path(cacheFile)
	if err != nil {
		return err
	}
	if err := os.Remove(cachePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

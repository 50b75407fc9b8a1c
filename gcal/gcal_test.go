package gcal

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"

	"expoadmin/combo"
)

func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return filepath.Join(home, ".config", appDir)
}

func TestConfigDefaults(t *testing.T) {
	dir := withHome(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"primary"}, cfg.CalendarIDs)
	assert.DirExists(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, configFile), []byte("{not json"), 0o600))
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"primary"}, cfg.CalendarIDs)
}

func TestConfigRoundTrip(t *testing.T) {
	withHome(t)

	require.NoError(t, SaveConfig(&Config{CalendarIDs: []string{"expo@group.calendar.google.com"}, DictFile: "/tmp/d.toml"}))
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"expo@group.calendar.google.com"}, cfg.CalendarIDs)
	assert.Equal(t, "/tmp/d.toml", cfg.DictFile)
}

func TestOptionsCache(t *testing.T) {
	withHome(t)
	ids := []string{"primary"}

	_, fresh := LoadOptionsCache(ids)
	assert.False(t, fresh)

	opts := []combo.Option{{Value: "a@example.com", Label: "Expo", Description: "Fair schedule"}}
	require.NoError(t, SaveOptionsCache(ids, opts))

	got, fresh := LoadOptionsCache(ids)
	assert.True(t, fresh)
	require.Len(t, got, 1)
	assert.Equal(t, "a@example.com", got[0].Key())
	assert.Equal(t, "Fair schedule", got[0].Description)

	got, _ = LoadOptionsCache([]string{"other"})
	assert.Nil(t, got, "options cached for other calendars are ignored")

	require.NoError(t, ClearOptionsCache())
	require.NoError(t, ClearOptionsCache())
	got, _ = LoadOptionsCache(ids)
	assert.Nil(t, got)
}

func writeStaleCache(t *testing.T, dir string, ids []string, opts []combo.Option) {
	t.Helper()
	data, err := json.Marshal(OptionsCache{
		CalendarIDs: ids,
		Options:     opts,
		Timestamp:   time.Now().Add(-48 * time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, cacheFile), data, 0o600))
}

func TestStaleCache(t *testing.T) {
	dir := withHome(t)
	ids := []string{"primary"}
	writeStaleCache(t, dir, ids, []combo.Option{{Value: "old", Label: "Old"}})

	got, fresh := LoadOptionsCache(ids)
	assert.False(t, fresh)
	require.Len(t, got, 1)
	assert.Equal(t, "old", got[0].Key())
}

func TestSource(t *testing.T) {
	dir := withHome(t)
	ids := []string{"primary"}
	ctx := context.Background()

	_, err := Source(nil, ids)(ctx)
	assert.Error(t, err, "no service and no cache")

	writeStaleCache(t, dir, ids, []combo.Option{{Value: "old", Label: "Old"}})
	got, err := Source(nil, ids)(ctx)
	require.NoError(t, err, "stale entries beat nothing")
	assert.Equal(t, "old", got[0].Key())

	require.NoError(t, SaveOptionsCache(ids, []combo.Option{{Value: "new", Label: "New"}}))
	got, err = Source(nil, ids)(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", got[0].Key())
}

func TestCalendarOptions(t *testing.T) {
	entries := []*calendar.CalendarListEntry{
		{Id: "me@example.com", Summary: "me@example.com", Primary: true},
		{Id: "expo@group", Summary: "Expo", SummaryOverride: "Expo 2026", Description: "Fair days"},
		{Id: "holidays@group", Summary: "Holidays"},
		{Id: "gone@group", Summary: "Gone", Deleted: true},
		{Id: "bare@group"},
		nil,
	}

	all := calendarOptions(entries, nil)
	require.Len(t, all, 4)
	assert.Equal(t, "Expo 2026", all[1].Label)
	assert.Equal(t, "Fair days", all[1].Description)
	assert.Equal(t, "bare@group", all[3].Label)

	some := calendarOptions(entries, []string{"primary", "expo@group"})
	require.Len(t, some, 2)
	assert.Equal(t, "me@example.com", some[0].Key())
	assert.Equal(t, "expo@group", some[1].Key())
}

func TestListCalendarsWithoutService(t *testing.T) {
	_, err := ListCalendars(context.Background(), nil)
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	dir := withHome(t)
	p, err := Path(tokenFile)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, tokenFile), p)
}

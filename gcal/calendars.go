// Package gcal turns the user's Google calendars into combo options.
package gcal

import (
	"context"
	"fmt"

	"google.golang.org/api/calendar/v3"

	"expoadmin/combo"
)

// ListCalendars returns every calendar on the user's list.
func ListCalendars(ctx context.Context, srv *calendar.Service) ([]*calendar.CalendarListEntry, error) {
	if srv == nil {
		return nil, fmt.Errorf("calendar service not initialized")
	}
	var entries []*calendar.CalendarListEntry
	err := srv.CalendarList.List().Pages(ctx, func(page *calendar.CalendarList) error {
		entries = append(entries, page.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve calendar list: %v", err)
	}
	return entries, nil
}

// CalendarOptions lists the calendars named in ids as options. An empty ids
// keeps every calendar.
func CalendarOptions(ctx context.Context, srv *calendar.Service, ids []string) ([]combo.Option, error) {
	entries, err := ListCalendars(ctx, srv)
	if err != nil {
		return nil, err
	}
	return calendarOptions(entries, ids), nil
}

// calendarOptions keeps the entries listed in ids. "primary" matches the
// user's primary calendar.
func calendarOptions(entries []*calendar.CalendarListEntry, ids []string) []combo.Option {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	options := make([]combo.Option, 0, len(entries))
	for _, e := range entries {
		if e == nil || e.Deleted {
			continue
		}
		if len(want) > 0 && !want[e.Id] && !(e.Primary && want["primary"]) {
			continue
		}
		label := e.Summary
		if e.SummaryOverride != "" {
			label = e.SummaryOverride
		}
		if label == "" {
			label = e.Id
		}
		options = append(options, combo.Option{
			Value:       e.Id,
			Label:       label,
			Description: e.Description,
		})
	}
	return options
}

// Source returns an option loader backed by the cache. A fresh cache is
// served as is; otherwise the list is fetched and cached, falling back to
// stale entries when the fetch fails.
func Source(srv *calendar.Service, ids []string) func(context.Context) ([]combo.Option, error) {
	return func(ctx context.Context) ([]combo.Option, error) {
		cached, fresh := LoadOptionsCache(ids)
		if fresh {
			return cached, nil
		}
		options, err := CalendarOptions(ctx, srv, ids)
		if err != nil {
			if cached != nil {
				return cached, nil
			}
			return nil, err
		}
		_ = SaveOptionsCache(ids, options)
		return options, nil
	}
}

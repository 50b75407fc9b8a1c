package combo

import (
	zone "github.com/lrstanley/bubblezone"
)

// Locator marks regions of rendered output and reports where they ended up
// on screen.
type Locator interface {
	Mark(id, s string) string
	Bounds(id string) (Rect, bool)
}

// ZoneLocator is a Locator backed by a bubblezone manager. The host view must
// pass its final output through the manager's Scan.
type ZoneLocator struct {
	Zones *zone.Manager
}

// NewZoneLocator wraps zones.
func NewZoneLocator(zones *zone.Manager) ZoneLocator {
	return ZoneLocator{Zones: zones}
}

func (z ZoneLocator) Mark(id, s string) string {
	if z.Zones == nil {
		return s
	}
	return z.Zones.Mark(id, s)
}

func (z ZoneLocator) Bounds(id string) (Rect, bool) {
	if z.Zones == nil {
		return Rect{}, false
	}
	info := z.Zones.Get(id)
	if info == nil || info.IsZero() {
		return Rect{}, false
	}
	return Rect{
		Left:   info.StartX,
		Top:    info.StartY,
		Right:  info.EndX + 1,
		Bottom: info.EndY + 1,
	}, true
}

// nopLocator renders without marks and never measures anything.
type nopLocator struct{}

func (nopLocator) Mark(_, s string) string    { return s }
func (nopLocator) Bounds(string) (Rect, bool) { return Rect{}, false }

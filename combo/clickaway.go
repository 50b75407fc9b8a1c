package combo

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"
)

// ClickAway is a page-wide mouse listener registry. A widget subscribes only
// while its dropdown is open, so a page with many widgets carries at most as
// many listeners as it has open dropdowns.
type ClickAway struct {
	next      int
	listeners map[int]func(tea.MouseMsg)
}

// NewClickAway returns an empty registry.
func NewClickAway() *ClickAway {
	return &ClickAway{listeners: make(map[int]func(tea.MouseMsg))}
}

// Subscription is a registered listener. Release removes it and is safe to
// call more than once.
type Subscription struct {
	owner *ClickAway
	id    int
}

// Listen registers fn for every mouse message dispatched to the registry.
func (c *ClickAway) Listen(fn func(tea.MouseMsg)) *Subscription {
	c.next++
	c.listeners[c.next] = fn
	return &Subscription{owner: c, id: c.next}
}

// Release deregisters the listener.
func (s *Subscription) Release() {
	if s == nil || s.owner == nil {
		return
	}
	delete(s.owner.listeners, s.id)
	s.owner = nil
}

// Active reports whether the subscription is still registered.
func (s *Subscription) Active() bool {
	return s != nil && s.owner != nil
}

// Dispatch hands msg to every listener in registration order. Listeners may
// release themselves or others while being dispatched to.
func (c *ClickAway) Dispatch(msg tea.MouseMsg) {
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := c.listeners[id]; ok {
			fn(msg)
		}
	}
}

// Len returns the number of registered listeners.
func (c *ClickAway) Len() int {
	return len(c.listeners)
}

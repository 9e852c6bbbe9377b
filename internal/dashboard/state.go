package dashboard

import (
	"fmt"

	"github.com/nfrund/taskboard/internal/domain"
)

// Filter is the display filter chosen in the dashboard's select control.
type Filter string

const (
	FilterAll       Filter = "All"
	FilterActive    Filter = "Active"
	FilterCompleted Filter = "Completed"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// ParseFilter accepts exactly one of the three filter names.
func ParseFilter(s string) (Filter, error) {
	for _, f := range Filters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidFilter, s)
}

// State is the ephemeral UI state of one rendered dashboard. It is never
// persisted; every fresh GET starts from NewState.
type State struct {
	Filter      Filter
	SidebarOpen bool
}

// NewState returns the initial state: filter All, sidebar closed.
func NewState() State {
	return State{Filter: FilterAll}
}

// SetFilter replaces the filter and leaves the sidebar alone.
func (s State) SetFilter(f Filter) State {
	s.Filter = f
	return s
}

// ToggleSidebar flips sidebar visibility.
func (s State) ToggleSidebar() State {
	s.SidebarOpen = !s.SidebarOpen
	return s
}

// CloseSidebar forces the sidebar closed. Used by navigation items and the overlay.
func (s State) CloseSidebar() State {
	s.SidebarOpen = false
	return s
}

const (
	sidebarOpen   = "open"
	sidebarClosed = "closed"
)

// sidebarValue is the wire form of SidebarOpen carried in forms and query strings.
func (s State) sidebarValue() string {
	if s.SidebarOpen {
		return sidebarOpen
	}
	return sidebarClosed
}

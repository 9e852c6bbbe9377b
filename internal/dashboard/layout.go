package dashboard

import "fmt"

// LayoutMode selects which responsive behavior the dashboard renders.
type LayoutMode string

const (
	// LayoutFixed keeps the sidebar visible at every width.
	LayoutFixed LayoutMode = "fixed"
	// LayoutCollapsible hides the sidebar behind a menu button and overlay on narrow viewports.
	LayoutCollapsible LayoutMode = "collapsible"
)

// ParseLayoutMode maps a configuration value onto a LayoutMode.
func ParseLayoutMode(s string) (LayoutMode, error) {
	switch LayoutMode(s) {
	case LayoutFixed, LayoutCollapsible:
		return LayoutMode(s), nil
	}
	return "", fmt.Errorf("unknown dashboard layout %q", s)
}

// LayoutConfig parameterizes the single dashboard view.
type LayoutConfig struct {
	Mode         LayoutMode
	ImageBaseURL string
}

// Collapsible reports whether the menu button and overlay are rendered.
func (c LayoutConfig) Collapsible() bool {
	return c.Mode == LayoutCollapsible
}

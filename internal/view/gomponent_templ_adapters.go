package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// Page content is built with gomponents while the document shell is a
// templ.Component; these adapters let either side embed the other.

type nodeComponent struct {
	node g.Node
}

func (a nodeComponent) Render(ctx context.Context, w io.Writer) error {
	return a.node.Render(w)
}

// Component wraps a gomponents node so it satisfies templ.Component.
func Component(node g.Node) templ.Component {
	return nodeComponent{node: node}
}

type componentNode struct {
	ctx       context.Context
	component templ.Component
}

func (a componentNode) Render(w io.Writer) error {
	return a.component.Render(a.ctx, w)
}

// Node wraps a templ.Component so it can be placed in a gomponents tree.
// gomponents does not pass a context while rendering, so the caller supplies one.
func Node(ctx context.Context, component templ.Component) g.Node {
	return componentNode{ctx: ctx, component: component}
}

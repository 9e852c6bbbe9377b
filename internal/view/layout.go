package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// PageTitle handles the conditional logic for the document title.
func PageTitle(title string) string {
	if title != "" {
		return title + " - Taskboard"
	}
	return "Taskboard"
}

// Base wraps page content in the HTML document shell with flash notifications.
func Base(title string, flashes FlashData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		doc := c.HTML5(c.HTML5Props{
			Title:    PageTitle(title),
			Language: "en",
			Head: []g.Node{
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.Link(h.Rel("stylesheet"), h.Href("/static/app.css")),
				h.Script(h.Src(htmxSrc), h.Defer()),
			},
			Body: []g.Node{
				h.Class("min-h-screen bg-gray-100 text-gray-900"),
				Flashes(flashes),
				Node(ctx, content),
			},
		})
		return doc.Render(w)
	})
}

// Flashes renders the notification area. Messages never block the page.
func Flashes(f FlashData) g.Node {
	if f.Empty() {
		return h.Div(h.ID("flashes"))
	}
	return h.Div(
		h.ID("flashes"),
		g.Attr("role", "status"),
		g.Map(f.Success, func(msg string) g.Node {
			return h.Div(h.Class("flash flash-success"), g.Text(msg))
		}),
		g.Map(f.Error, func(msg string) g.Node {
			return h.Div(h.Class("flash flash-error"), g.Text(msg))
		}),
	)
}

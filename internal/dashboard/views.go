package dashboard

import (
	"github.com/nfrund/taskboard/internal/domain"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

const (
	shellID            = "dashboard"
	routeFilter        = "/dashboard/filter"
	routeSidebarToggle = "/dashboard/sidebar/toggle"
	routeSidebarClose  = "/dashboard/sidebar/close"
	routeSignOut       = "/dashboard/sign-out"
)

// Shell renders the whole dashboard for the given state. htmx actions swap
// the shell in place, carrying the state in hidden inputs.
func Shell(user domain.User, state State, layout LayoutConfig) g.Node {
	return h.Div(
		h.ID(shellID),
		h.Class("min-h-screen flex"),
		g.Attr("data-layout", string(layout.Mode)),
		stateInputs(state),
		sidebar(state, layout),
		g.If(layout.Collapsible() && state.SidebarOpen, overlay()),
		h.Main(
			h.Class("flex-1 p-6 overflow-auto"),
			header(user, layout),
			filterControl(state),
			statsGrid(Stats()),
			gallery(Gallery(layout.ImageBaseURL)),
			taskList(Tasks()),
		),
	)
}

func stateInputs(state State) g.Node {
	return h.Div(
		h.ID("dashboard-state"),
		h.Input(h.Type("hidden"), h.ID("state-filter"), h.Name("filter"), h.Value(string(state.Filter))),
		h.Input(h.Type("hidden"), h.ID("state-sidebar"), h.Name("sidebar"), h.Value(state.sidebarValue())),
	)
}

// swapShell points an htmx request at the shell and includes the hidden state.
func swapShell(route, include string) g.Node {
	return g.Group{
		hx.Post(route),
		hx.Target("#" + shellID),
		hx.Swap("outerHTML"),
		g.Attr("hx-include", include),
	}
}

func sidebar(state State, layout LayoutConfig) g.Node {
	classes := "sidebar w-64 bg-white shadow-md flex flex-col"
	if layout.Collapsible() {
		classes += " sidebar-collapsible"
		if state.SidebarOpen {
			classes += " sidebar-open"
		}
	}

	return h.Aside(
		h.ID("sidebar"),
		h.Class(classes),
		g.If(layout.Collapsible(), g.Attr("aria-hidden", ariaHidden(state.SidebarOpen))),
		h.Div(h.Class("p-6 text-2xl font-bold border-b"), g.Text("🌟 Dashboard")),
		h.Nav(
			h.Class("flex-1 p-4 flex flex-col gap-4"),
			g.Map(NavItems(), func(item NavItem) g.Node {
				return h.Button(
					h.Type("button"),
					h.Class("nav-item rounded-md p-2 text-left"),
					g.If(layout.Collapsible(), swapShell(routeSidebarClose, "#state-filter, #state-sidebar")),
					g.Text(item.Emoji+" "+item.Label),
				)
			}),
		),
	)
}

func ariaHidden(open bool) string {
	if open {
		return "false"
	}
	return "true"
}

func overlay() g.Node {
	return h.Div(
		h.ID("sidebar-overlay"),
		h.Class("overlay fixed inset-0"),
		swapShell(routeSidebarClose, "#state-filter, #state-sidebar"),
	)
}

func header(user domain.User, layout LayoutConfig) g.Node {
	return h.Header(
		h.Class("flex justify-between items-center mb-6"),
		g.If(layout.Collapsible(), h.Button(
			h.Type("button"),
			h.ID("menu-button"),
			h.Class("menu-button"),
			g.Attr("aria-controls", "sidebar"),
			swapShell(routeSidebarToggle, "#state-filter, #state-sidebar"),
			g.Text("☰"),
		)),
		h.H1(h.Class("text-3xl font-bold"), g.Text("Welcome Back, "+user.DisplayName()+"!")),
		h.Form(
			h.Method("post"),
			h.Action(routeSignOut),
			hx.Post(routeSignOut),
			g.Attr("hx-disabled-elt", "find button"),
			h.Button(
				h.Type("submit"),
				h.ID("sign-out"),
				h.Class("px-4 py-2 bg-blue-600 text-white rounded-md"),
				g.Text("Sign Out"),
			),
		),
	)
}

func filterControl(state State) g.Node {
	return h.Div(
		h.Class("flex gap-4 mb-6 items-center"),
		h.Label(h.For("filter"), h.Class("font-semibold"), g.Text("Filter:")),
		h.Select(
			h.ID("filter"),
			h.Name("filter"),
			h.Class("p-2 rounded-md border"),
			hx.Trigger("change"),
			swapShell(routeFilter, "#state-sidebar"),
			g.Map(Filters, func(f Filter) g.Node {
				return h.Option(h.Value(string(f)), g.If(f == state.Filter, h.Selected()), g.Text(string(f)))
			}),
		),
	)
}

func statsGrid(cards []StatCard) g.Node {
	return h.Div(
		h.Class("grid grid-cols-4 gap-6 mb-6"),
		g.Map(cards, func(card StatCard) g.Node {
			return h.Div(
				h.Class("stat-card bg-white p-6 rounded-xl shadow"),
				h.P(h.Class("text-2xl"), g.Text(card.Emoji)),
				h.H2(h.Class("text-xl font-semibold mt-2"), g.Text(card.Label)),
				h.P(h.Class("text-gray-500 text-lg"), g.Text(card.FormattedValue())),
			)
		}),
	)
}

func gallery(images []GalleryImage) g.Node {
	return h.Section(
		h.Class("mb-6"),
		h.H2(h.Class("text-2xl font-bold mb-4"), g.Text("Gallery 📸")),
		h.Div(
			h.Class("grid grid-cols-3 gap-4"),
			g.Map(images, func(img GalleryImage) g.Node {
				return h.Div(
					h.Class("rounded-xl overflow-hidden shadow"),
					h.Img(h.Src(img.URL), h.Alt(img.Alt), h.Class("w-full h-48 object-cover"), g.Attr("loading", "lazy")),
				)
			}),
		),
	)
}

func taskList(tasks []Task) g.Node {
	return h.Section(
		h.Class("bg-white p-4 rounded-xl shadow max-h-96 overflow-y-auto"),
		h.H2(h.Class("text-xl font-bold mb-2"), g.Text("Tasks 🗂")),
		h.Ul(
			h.Class("space-y-2"),
			g.Map(tasks, func(t Task) g.Node {
				mark := "⏳"
				if t.Done {
					mark = "✅"
				}
				return h.Li(
					h.Class("task p-2 border-b rounded-md flex justify-between"),
					g.Text(t.Title()+" "+mark),
					h.Span(h.Class("text-gray-400"), g.Text(t.Ref())),
				)
			}),
		),
	)
}

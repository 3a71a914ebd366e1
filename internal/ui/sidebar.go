package ui

import (
	"strconv"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"

	"github.com/99minutos/dashboard-workspace/internal/sidebar"
)

// SidebarID is the element replaced on every live update.
const SidebarID = "sidebar"

// Sidebar renders the shortcut list with its add form and notices. Forms
// post intents over the page's websocket.
func Sidebar(snap sidebar.Snapshot) g.Node {
	return sidebarNode(snap, false)
}

// SidebarUpdate is the websocket frame that swaps the sidebar in place.
func SidebarUpdate(snap sidebar.Snapshot) g.Node {
	return sidebarNode(snap, true)
}

func sidebarNode(snap sidebar.Snapshot, oob bool) g.Node {
	return h.Aside(h.ID(SidebarID), h.Class("sidebar"), h.Data("state", snap.State.String()),
		g.If(oob, hx.SwapOOB("true")),
		userHeader(snap),
		notices(snap.Notices),
		entries(snap),
		h.Form(h.Class("sidebar-add"), g.Attr("ws-send"),
			h.Input(h.Type("hidden"), h.Name("intent"), h.Value("add")),
			h.Input(h.Type("text"), h.Name("name"), h.Placeholder("New dashboard"), h.Required(), h.MaxLength("120")),
			h.Button(h.Type("submit"), h.TitleAttr("Add dashboard"), h.I(h.Class("ti ti-plus"))),
		),
	)
}

func entries(snap sidebar.Snapshot) g.Node {
	switch {
	case snap.State == sidebar.StateLoading && len(snap.Entries) == 0:
		return h.P(h.Class("sidebar-empty"), g.Text("Loading…"))
	case len(snap.Entries) == 0:
		return h.P(h.Class("sidebar-empty"), g.Text("No dashboards yet."))
	}

	return h.Ul(h.Class("sidebar-list"),
		g.Map(snap.Entries, func(e sidebar.Entry) g.Node {
			return h.Li(h.Data("id", e.ID),
				h.A(h.Href(e.URL), h.I(h.Class(e.Glyph)), h.Span(g.Text(e.Name))),
				h.Form(h.Class("inline"), g.Attr("ws-send"),
					h.Input(h.Type("hidden"), h.Name("intent"), h.Value("delete")),
					h.Input(h.Type("hidden"), h.Name("id"), h.Value(e.ID)),
					h.Button(h.Type("submit"), h.TitleAttr("Delete "+e.Name), h.I(h.Class("ti ti-trash"))),
				),
			)
		}),
	)
}

func notices(ns []sidebar.Notice) g.Node {
	if len(ns) == 0 {
		return nil
	}
	return h.Div(h.Class("notices"),
		g.Map(ns, func(n sidebar.Notice) g.Node {
			return h.Div(h.Class("notice notice-"+n.Level), h.Role("status"),
				h.Span(g.Text(n.Message)),
				h.Form(h.Class("inline"), g.Attr("ws-send"),
					h.Input(h.Type("hidden"), h.Name("intent"), h.Value("dismiss")),
					h.Input(h.Type("hidden"), h.Name("notice"), h.Value(strconv.Itoa(n.ID))),
					h.Button(h.Type("submit"), h.TitleAttr("Dismiss"), g.Text("×")),
				),
			)
		}),
	)
}

func userHeader(snap sidebar.Snapshot) g.Node {
	if snap.User == nil {
		return nil
	}
	name := snap.User.Name
	if name == "" {
		name = snap.User.Username
	}
	return h.Header(h.Class("sidebar-user"),
		h.I(h.Class("ti ti-user")),
		h.Span(g.Text(name)),
		h.Button(h.Class("link"), hx.Post("/auth/logout"), g.Text("Sign out")),
	)
}

package ui

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"

	"github.com/99minutos/dashboard-workspace/internal/sidebar"
	"github.com/99minutos/dashboard-workspace/internal/workspace"
)

// ShellPage is the signed-in workspace: sidebar, palette toolbar and the
// pane layout. The body keeps a websocket to /ui/live for sidebar updates.
func ShellPage(snap sidebar.Snapshot, layout *workspace.Model, palette []workspace.PaletteItem) g.Node {
	return page("Dashboards",
		h.Div(h.Class("shell"), hx.Ext("ws"), g.Attr("ws-connect", "/ui/live"),
			Sidebar(snap),
			h.Main(h.Class("shell-main"),
				toolbar(palette),
				workspace.RenderLayout(layout),
			),
		),
	)
}

func toolbar(items []workspace.PaletteItem) g.Node {
	return h.Nav(h.Class("palette"), h.Aria("label", "Components"),
		g.Map(items, func(p workspace.PaletteItem) g.Node {
			return h.Button(h.Class("palette-item tint-"+p.Tint), h.Draggable("true"),
				h.Data("component", p.Component),
				h.Span(h.Aria("hidden", "true"), g.Text(p.Emoji)), g.Text(" "+p.Label),
			)
		}),
	)
}

// Package ui renders the server-side pages and the live sidebar fragments.
package ui

import (
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

const (
	htmxScript   = "https://unpkg.com/htmx.org@2.0.4"
	htmxWSScript = "https://unpkg.com/htmx-ext-ws@2.0.2/ws.js"
	tablerIcons  = "https://cdn.jsdelivr.net/npm/@tabler/icons-webfont@3.19.0/dist/tabler-icons.min.css"
)

// page wraps body in the common document shell.
func page(title string, body ...g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    title,
		Language: "en",
		Head: []g.Node{
			h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
			h.Link(h.Rel("stylesheet"), h.Href(tablerIcons)),
			h.Link(h.Rel("stylesheet"), h.Href("/static/app.css")),
			h.Script(h.Src(htmxScript)),
			h.Script(h.Src(htmxWSScript)),
		},
		Body: body,
	})
}

package workspace

import (
	"encoding/json"
	"fmt"
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// PaneRenderer turns a tab into pane content.
type PaneRenderer func(tab Node) g.Node

// renderers is the component dispatch table. Lookups of unknown tags fall
// through to unknownPane.
var renderers = map[string]PaneRenderer{
	"text":      textPane,
	"multitype": multitypePane,
	"area":      chartPane("area"),
	"bar":       chartPane("bar"),
	"line":      chartPane("line"),
	"pie":       chartPane("pie"),
	"radar":     chartPane("radar"),
	"radial":    chartPane("radial"),
	"table":     tablePane,
}

// Components lists the tags with a registered renderer.
func Components() []string {
	out := make([]string, 0, len(renderers))
	for k := range renderers {
		out = append(out, k)
	}
	return out
}

// RenderPane renders one tab. It never panics: a renderer failure becomes
// an inline error block.
func RenderPane(tab Node) (node g.Node) {
	defer func() {
		if r := recover(); r != nil {
			node = h.Div(h.Class("pane pane-error"), g.Textf("%v", r))
		}
	}()

	render, ok := renderers[tab.Component]
	if !ok {
		return unknownPane(tab)
	}
	return render(tab)
}

func unknownPane(tab Node) g.Node {
	return h.Div(h.Class("pane pane-unknown"), h.Style("padding: 8px"),
		g.Text("Unknown component: "+tab.Component),
	)
}

func textPane(tab Node) g.Node {
	text, _ := tab.Config["text"].(string)
	return h.Div(h.Class("pane pane-text"), h.Style("padding: 12px; height: 100%; overflow: auto"),
		h.H3(h.Style("margin-top: 0"), g.Text(tab.Name)),
		h.Div(g.Text(text)),
	)
}

func multitypePane(tab Node) g.Node {
	kind, _ := tab.Config["type"].(string)
	data, _ := tab.Config["data"].(string)

	switch kind {
	case "url":
		if !frameURL(data) {
			return h.Div(h.Class("pane pane-error"), g.Text("refusing to frame a non-http(s) address"))
		}
		return h.IFrame(
			h.Class("pane pane-url"),
			h.TitleAttr(tab.ID),
			h.Src(data),
			h.Style("display: block; border: none; box-sizing: border-box"),
			h.Width("100%"),
			h.Height("100%"),
		)
	case "html":
		return h.Div(h.Class("pane pane-html"), g.Raw(data))
	case "text":
		return h.Textarea(
			h.Class("pane pane-textarea"),
			h.Style("position: absolute; width: 100%; height: 100%; resize: none; box-sizing: border-box; border: none"),
			g.Text(data),
		)
	default:
		return h.Div(h.Class("pane pane-error"), g.Textf("unsupported multitype content %q", kind))
	}
}

func chartPane(kind string) PaneRenderer {
	series, _ := json.Marshal(ChartSeries)
	return func(tab Node) g.Node {
		return h.Figure(
			h.Class("pane pane-chart chart-"+kind),
			h.Data("chart", kind),
			h.Data("series", string(series)),
			h.FigCaption(g.Text(tab.Name)),
			chartFallback(),
		)
	}
}

// chartFallback renders the series as a table for clients without scripts.
func chartFallback() g.Node {
	return h.Table(h.Class("chart-fallback"),
		h.THead(h.Tr(h.Th(g.Text("Month")), h.Th(g.Text("Desktop")), h.Th(g.Text("Mobile")))),
		h.TBody(g.Map(ChartSeries, func(p ChartPoint) g.Node {
			return h.Tr(
				h.Td(g.Text(p.Month)),
				h.Td(g.Text(strconv.Itoa(p.Desktop))),
				h.Td(g.Text(strconv.Itoa(p.Mobile))),
			)
		})),
	)
}

func tablePane(tab Node) g.Node {
	return h.Div(h.Class("pane pane-table"),
		h.Table(h.Class("data-table"),
			h.THead(h.Tr(
				h.Th(g.Text("Header")),
				h.Th(g.Text("Section Type")),
				h.Th(g.Text("Status")),
				h.Th(g.Text("Target")),
				h.Th(g.Text("Limit")),
				h.Th(g.Text("Reviewer")),
			)),
			h.TBody(g.Map(TableRows(), func(r TableRow) g.Node {
				return h.Tr(h.Data("row-id", strconv.Itoa(r.ID)),
					h.Td(g.Text(r.Header)),
					h.Td(g.Text(r.Type)),
					h.Td(g.Text(r.Status)),
					h.Td(g.Text(r.Target)),
					h.Td(g.Text(r.Limit)),
					h.Td(g.Text(r.Reviewer)),
				)
			})),
		),
	)
}

// RenderLayout renders the main layout tree as nested flex containers.
func RenderLayout(m *Model) g.Node {
	return h.Div(h.Class("workspace"), h.ID("workspace"), renderNode(m.Layout, true))
}

func renderNode(n Node, horizontal bool) g.Node {
	style := ""
	if n.Weight > 0 {
		style = fmt.Sprintf("flex: %g", n.Weight)
	}

	switch n.Type {
	case KindRow:
		dir := "row"
		if !horizontal {
			dir = "column"
		}
		return h.Div(h.Class("ws-row ws-"+dir), h.Data("node-id", n.ID), g.If(style != "", h.Style(style)),
			g.Map(n.Children, func(c Node) g.Node { return renderNode(c, !horizontal) }),
		)
	case KindTabSet:
		return h.Div(h.Class("ws-tabset"), h.Data("node-id", n.ID), g.If(style != "", h.Style(style)),
			h.Ul(h.Class("ws-tabstrip"),
				g.Map(n.Children, func(c Node) g.Node {
					return h.Li(h.Class("ws-tab-button"), h.Data("tab-id", c.ID), g.Text(c.Name))
				}),
			),
			g.Map(n.Children, func(c Node) g.Node {
				return h.Section(h.Class("ws-tab"), h.Data("tab-id", c.ID), RenderPane(c))
			}),
		)
	default:
		return RenderPane(n)
	}
}

package workspace

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// DraggedTabIcon is the icon given to tabs created from the palette.
const DraggedTabIcon = "images/article.svg"

// PaletteItem is a toolbar entry that can be dragged into the layout.
type PaletteItem struct {
	Component string `json:"component"`
	Label     string `json:"label"`
	Emoji     string `json:"emoji"`
	Tint      string `json:"tint"`
}

// Palette lists the draggable components in toolbar order.
var Palette = []PaletteItem{
	{Component: "area", Label: "Area Chart", Emoji: "📊", Tint: "blue"},
	{Component: "bar", Label: "Bar Chart", Emoji: "📊", Tint: "green"},
	{Component: "line", Label: "Line Chart", Emoji: "📈", Tint: "purple"},
	{Component: "pie", Label: "Pie Chart", Emoji: "🥧", Tint: "yellow"},
	{Component: "radar", Label: "Radar Chart", Emoji: "🎯", Tint: "pink"},
	{Component: "radial", Label: "Radial Chart", Emoji: "⭕", Tint: "indigo"},
	{Component: "table", Label: "Data Table", Emoji: "📋", Tint: "gray"},
}

// TabFactory synthesizes tab descriptors with a monotonically increasing
// suffix, starting at 1.
type TabFactory struct {
	mu   sync.Mutex
	next int
}

func NewTabFactory() *TabFactory {
	return &TabFactory{next: 1}
}

// TabFactoryFor continues the numbering of the palette tabs already in m.
func TabFactoryFor(m *Model) *TabFactory {
	return &TabFactory{next: m.NextTabNumber()}
}

// NewTab returns {type:"tab", id:"#<uuid>", name:"<label> <n>", component, icon}.
// An empty label falls back to the palette label of the component.
func (f *TabFactory) NewTab(component, label string) Node {
	if label == "" {
		label = labelFor(component)
	}

	f.mu.Lock()
	n := f.next
	f.next++
	f.mu.Unlock()

	return Node{
		Type:      KindTab,
		ID:        "#" + uuid.NewString(),
		Name:      fmt.Sprintf("%s %d", label, n),
		Component: component,
		Icon:      DraggedTabIcon,
	}
}

// NextTabNumber is one past the highest suffix among the palette tabs of m,
// borders included.
func (m *Model) NextTabNumber() int {
	highest := 0
	visit := func(n Node) {
		if n.Type != KindTab || n.Icon != DraggedTabIcon {
			return
		}
		i := strings.LastIndexByte(n.Name, ' ')
		if i < 0 {
			return
		}
		if v, err := strconv.Atoi(n.Name[i+1:]); err == nil && v > highest {
			highest = v
		}
	}

	for _, tab := range m.Tabs() {
		visit(tab)
	}
	for _, b := range m.Borders {
		for _, c := range b.Children {
			visit(c)
		}
	}
	return highest + 1
}

func labelFor(component string) string {
	for _, p := range Palette {
		if p.Component == component {
			return p.Label
		}
	}
	return component
}

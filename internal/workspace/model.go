// Package workspace models the multi-pane workspace: a serializable tree of
// rows, tabsets and tabs, plus the rules that turn a tab into pane content.
package workspace

import (
	"fmt"
	"net/url"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
)

// Node kinds.
const (
	KindRow    = "row"
	KindTabSet = "tabset"
	KindTab    = "tab"
	KindBorder = "border"
)

// Model is the persisted layout tree.
type Model struct {
	Global  map[string]any `json:"global,omitempty" yaml:"global,omitempty"`
	Borders []Border       `json:"borders,omitempty" yaml:"borders,omitempty"`
	Layout  Node           `json:"layout" yaml:"layout"`
	Popouts map[string]any `json:"popouts,omitempty" yaml:"popouts,omitempty"`
}

// Border is a collapsible edge strip holding tabs.
type Border struct {
	Type     string `json:"type" yaml:"type"`
	Location string `json:"location" yaml:"location"`
	Size     int    `json:"size,omitempty" yaml:"size,omitempty"`
	Children []Node `json:"children" yaml:"children"`
}

// Node is a row, tabset or tab. Only tabs carry a component.
type Node struct {
	Type         string         `json:"type" yaml:"type"`
	ID           string         `json:"id,omitempty" yaml:"id,omitempty"`
	Name         string         `json:"name,omitempty" yaml:"name,omitempty"`
	AltName      string         `json:"altName,omitempty" yaml:"altName,omitempty"`
	Component    string         `json:"component,omitempty" yaml:"component,omitempty"`
	Icon         string         `json:"icon,omitempty" yaml:"icon,omitempty"`
	Weight       float64        `json:"weight,omitempty" yaml:"weight,omitempty"`
	Selected     int            `json:"selected,omitempty" yaml:"selected,omitempty"`
	Active       bool           `json:"active,omitempty" yaml:"active,omitempty"`
	EnableClose  *bool          `json:"enableClose,omitempty" yaml:"enableClose,omitempty"`
	EnablePopout *bool          `json:"enablePopout,omitempty" yaml:"enablePopout,omitempty"`
	Config       map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
	Children     []Node         `json:"children,omitempty" yaml:"children,omitempty"`
}

var borderLocations = map[string]bool{"top": true, "bottom": true, "left": true, "right": true}

// Validate checks the structural rules of the tree: the root is a row, rows
// hold rows or tabsets, tabsets and borders hold tabs, every tab names a
// component and ids are unique.
func (m *Model) Validate() error {
	seen := make(map[string]struct{})

	if m.Layout.Type != KindRow {
		return invalid("root must be a %s, got %q", KindRow, m.Layout.Type)
	}
	if err := validateNode(m.Layout, seen); err != nil {
		return err
	}

	for i, b := range m.Borders {
		if b.Type != "" && b.Type != KindBorder {
			return invalid("borders[%d]: unexpected type %q", i, b.Type)
		}
		if !borderLocations[b.Location] {
			return invalid("borders[%d]: unknown location %q", i, b.Location)
		}
		for _, child := range b.Children {
			if child.Type != KindTab {
				return invalid("border %s may only hold tabs, got %q", b.Location, child.Type)
			}
			if err := validateNode(child, seen); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateNode(n Node, seen map[string]struct{}) error {
	if n.ID != "" {
		if _, dup := seen[n.ID]; dup {
			return invalid("duplicate id %q", n.ID)
		}
		seen[n.ID] = struct{}{}
	}

	switch n.Type {
	case KindRow:
		for _, c := range n.Children {
			if c.Type != KindRow && c.Type != KindTabSet {
				return invalid("row %q may only hold rows or tabsets, got %q", n.ID, c.Type)
			}
		}
	case KindTabSet:
		for _, c := range n.Children {
			if c.Type != KindTab {
				return invalid("tabset %q may only hold tabs, got %q", n.ID, c.Type)
			}
		}
	case KindTab:
		if n.Component == "" {
			return invalid("tab %q has no component", n.ID)
		}
		if len(n.Children) > 0 {
			return invalid("tab %q cannot have children", n.ID)
		}
		if kind, _ := n.Config["type"].(string); n.Component == "multitype" && kind == "url" {
			if data, _ := n.Config["data"].(string); !frameURL(data) {
				return invalid("tab %q: url pane needs an absolute http(s) address, got %q", n.ID, data)
			}
		}
	default:
		return invalid("unknown node type %q", n.Type)
	}

	for _, c := range n.Children {
		if err := validateNode(c, seen); err != nil {
			return err
		}
	}
	return nil
}

// frameURL reports whether s may be loaded into a url pane.
func frameURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Tabs returns every tab of the main layout in depth-first order.
func (m *Model) Tabs() []Node {
	var out []Node
	var walk func(Node)
	walk = func(n Node) {
		if n.Type == KindTab {
			out = append(out, n)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(m.Layout)
	return out
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidLayout, fmt.Sprintf(format, args...))
}

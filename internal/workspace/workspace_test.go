package workspace

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, n.Render(&buf))
	return buf.String()
}

func TestDefaultLayoutIsValid(t *testing.T) {
	m := Default()

	require.NoError(t, m.Validate())
	assert.Equal(t, KindRow, m.Layout.Type)
	assert.Len(t, m.Borders, 3)

	var components []string
	for _, tab := range m.Tabs() {
		components = append(components, tab.Component)
	}
	assert.Equal(t, []string{"area", "bar", "line", "pie", "radar", "radial", "table", "multitype", "table"}, components)
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	a := Default()
	a.Layout.Children = nil

	b := Default()
	assert.NotEmpty(t, b.Layout.Children)
}

func TestValidateRejectsMalformedTrees(t *testing.T) {
	tab := func(id string) Node { return Node{Type: KindTab, ID: id, Component: "text"} }

	cases := map[string]Model{
		"root not a row":        {Layout: Node{Type: KindTabSet}},
		"tab in row":            {Layout: Node{Type: KindRow, Children: []Node{tab("a")}}},
		"row in tabset":         {Layout: Node{Type: KindRow, Children: []Node{{Type: KindTabSet, Children: []Node{{Type: KindRow}}}}}},
		"tab without component": {Layout: Node{Type: KindRow, Children: []Node{{Type: KindTabSet, Children: []Node{{Type: KindTab, ID: "x"}}}}}},
		"duplicate ids":         {Layout: Node{Type: KindRow, Children: []Node{{Type: KindTabSet, Children: []Node{tab("a"), tab("a")}}}}},
		"bad border":            {Layout: Node{Type: KindRow}, Borders: []Border{{Type: KindBorder, Location: "middle"}}},
		"unknown type":          {Layout: Node{Type: KindRow, Children: []Node{{Type: "column"}}}},
	}
	for _, src := range []string{"javascript:alert(document.cookie)", "data:text/html,<script>x</script>", "//evil.example", "/relative", "", "ftp://files.example"} {
		cases["url pane "+src] = Model{Layout: Node{Type: KindRow, Children: []Node{{Type: KindTabSet, Children: []Node{
			{Type: KindTab, ID: "w", Component: "multitype", Config: map[string]any{"type": "url", "data": src}},
		}}}}}
	}

	for name, m := range cases {
		t.Run(name, func(t *testing.T) {
			err := m.Validate()
			assert.True(t, errors.Is(err, domain.ErrInvalidLayout), "got %v", err)
		})
	}
}

func TestLoadFromJSONAndYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/layouts/a.json", []byte(`{
		"layout": {"type": "row", "children": [
			{"type": "tabset", "children": [{"type": "tab", "id": "t1", "name": "Notes", "component": "text", "config": {"text": "hi"}}]}
		]}
	}`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/layouts/b.yml", []byte(`
layout:
  type: row
  children:
    - type: tabset
      children:
        - {type: tab, id: t1, name: Notes, component: text, config: {text: hi}}
`), 0o644))

	fromJSON, err := Load(fs, "/layouts/a.json")
	require.NoError(t, err)
	fromYAML, err := Load(fs, "/layouts/b.yml")
	require.NoError(t, err)

	assert.Equal(t, fromJSON.Tabs(), fromYAML.Tabs())
	assert.Equal(t, "hi", fromYAML.Tabs()[0].Config["text"])
}

func TestLoadMissingOrBrokenFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := Load(fs, "/missing.json")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "/broken.json", []byte(`{"layout":`), 0o644))
	_, err = Load(fs, "/broken.json")
	assert.ErrorIs(t, err, domain.ErrInvalidLayout)
}

func TestWatcherReloadKeepsPreviousLayoutOnError(t *testing.T) {
	fs := afero.NewMemMapFs()
	source := NewSource(nil)
	w := NewWatcher(fs, "/layout.yaml", source, zerolog.Nop())

	reloaded := 0
	w.OnReload = func(*Model) { reloaded++ }

	require.NoError(t, afero.WriteFile(fs, "/layout.yaml", []byte("layout: {type: tabset}"), 0o644))
	assert.Error(t, w.Reload())
	assert.Equal(t, 0, reloaded)
	assert.Len(t, source.Current().Tabs(), len(Default().Tabs()))

	require.NoError(t, afero.WriteFile(fs, "/layout.yaml", []byte(`
layout:
  type: row
  children:
    - type: tabset
      children:
        - {type: tab, id: only, name: Only, component: bar}
`), 0o644))
	require.NoError(t, w.Reload())
	assert.Equal(t, 1, reloaded)
	require.Len(t, source.Current().Tabs(), 1)
	assert.Equal(t, "only", source.Current().Tabs()[0].ID)
}

func TestRenderPaneDispatch(t *testing.T) {
	cases := []struct {
		tab  Node
		want string
	}{
		{Node{Component: "text", Name: "Notes", Config: map[string]any{"text": "hello"}}, "hello"},
		{Node{Component: "multitype", ID: "w", Config: map[string]any{"type": "url", "data": "https://example.com"}}, `src="https://example.com"`},
		{Node{Component: "multitype", Config: map[string]any{"type": "html", "data": "<b>bold</b>"}}, "<b>bold</b>"},
		{Node{Component: "multitype", Config: map[string]any{"type": "text", "data": "plain"}}, "<textarea"},
		{Node{Component: "bar", Name: "Bar Chart"}, `data-chart="bar"`},
		{Node{Component: "radial"}, `data-chart="radial"`},
		{Node{Component: "table"}, "Cover page"},
		{Node{Component: "grid"}, "Unknown component: grid"},
	}

	for _, tc := range cases {
		t.Run(tc.tab.Component, func(t *testing.T) {
			assert.Contains(t, render(t, RenderPane(tc.tab)), tc.want)
		})
	}
}

func TestValidateAcceptsHTTPFrames(t *testing.T) {
	for _, src := range []string{"https://example.com/x?y=1", "HTTP://example.com"} {
		m := Model{Layout: Node{Type: KindRow, Children: []Node{{Type: KindTabSet, Children: []Node{
			{Type: KindTab, ID: "w", Component: "multitype", Config: map[string]any{"type": "url", "data": src}},
		}}}}}
		assert.NoError(t, m.Validate(), src)
	}
}

func TestRenderPaneNeverFramesScriptURLs(t *testing.T) {
	out := render(t, RenderPane(Node{Component: "multitype", Config: map[string]any{"type": "url", "data": "javascript:alert(1)"}}))

	assert.Contains(t, out, "pane-error")
	assert.NotContains(t, out, "<iframe")
	assert.NotContains(t, out, "javascript:")
}

func TestRenderPaneToleratesMalformedConfig(t *testing.T) {
	out := render(t, RenderPane(Node{Component: "multitype", Config: map[string]any{"type": 42}}))
	assert.Contains(t, out, "pane-error")

	out = render(t, RenderPane(Node{Component: "text"}))
	assert.Contains(t, out, "pane-text")
}

func TestRenderLayoutIncludesEveryTab(t *testing.T) {
	m := Default()
	out := render(t, RenderLayout(m))

	for _, tab := range m.Tabs() {
		assert.Contains(t, out, tab.ID)
	}
	assert.Equal(t, 0, strings.Count(out, "Unknown component"))
}

func TestTabFactory(t *testing.T) {
	f := NewTabFactory()

	first := f.NewTab("bar", "Bar Chart")
	second := f.NewTab("table", "")

	assert.Equal(t, KindTab, first.Type)
	assert.Equal(t, "Bar Chart 1", first.Name)
	assert.Equal(t, "Data Table 2", second.Name)
	assert.Equal(t, DraggedTabIcon, first.Icon)
	assert.True(t, strings.HasPrefix(first.ID, "#"))
	assert.NotEqual(t, first.ID, second.ID)
}

func TestTabFactoryForContinuesLayoutNumbering(t *testing.T) {
	m := Default()
	assert.Equal(t, 1, m.NextTabNumber(), "built-in tabs carry no suffix")

	m.Borders[1].Children = append(m.Borders[1].Children,
		Node{Type: KindTab, ID: "a", Name: "Area Chart 7", Component: "area", Icon: DraggedTabIcon},
		Node{Type: KindTab, ID: "b", Name: "Q 2025", Component: "text", Icon: "images/folder.svg"},
		Node{Type: KindTab, ID: "c", Name: "Renamed", Component: "bar", Icon: DraggedTabIcon},
	)

	tab := TabFactoryFor(m).NewTab("line", "")
	assert.Equal(t, "Line Chart 8", tab.Name)
}

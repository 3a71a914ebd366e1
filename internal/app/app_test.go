package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/dashboard-workspace/internal/pkg/config"
	"github.com/99minutos/dashboard-workspace/internal/workspace"
)

func tabIDs(m *workspace.Model) []string {
	var ids []string
	for _, tab := range m.Tabs() {
		ids = append(ids, tab.ID)
	}
	return ids
}

func TestLayoutSource_BuiltInWithoutFile(t *testing.T) {
	source, watcher := layoutSource("", zerolog.Nop())

	assert.Nil(t, watcher)
	assert.Equal(t, tabIDs(workspace.Default()), tabIDs(source.Current()))
}

func TestLayoutSource_LoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"layout": {"type": "row", "children": [
			{"type": "tabset", "children": [{"type": "tab", "id": "n1", "name": "Notes", "component": "text"}]}
		]}
	}`), 0o644))

	source, watcher := layoutSource(path, zerolog.Nop())

	require.NotNil(t, watcher)
	tabs := source.Current().Tabs()
	require.Len(t, tabs, 1)
	assert.Equal(t, "Notes", tabs[0].Name)
}

func TestLayoutSource_BrokenFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"layout":`), 0o644))

	source, watcher := layoutSource(path, zerolog.Nop())

	require.NotNil(t, watcher)
	assert.Equal(t, tabIDs(workspace.Default()), tabIDs(source.Current()))
}

func TestEnsureSchema_SQLite(t *testing.T) {
	cfg := &config.Config{
		StoreDriver: config.DriverSQLite,
		SQLite:      config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "dash.db")},
	}

	driver, err := EnsureSchema(context.Background(), cfg)

	require.NoError(t, err)
	assert.Equal(t, config.DriverSQLite, driver)
}

func TestEnsureSchema_UnknownDriver(t *testing.T) {
	_, err := EnsureSchema(context.Background(), &config.Config{StoreDriver: "etcd"})
	assert.Error(t, err)
}

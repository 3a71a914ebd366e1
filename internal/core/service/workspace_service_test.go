package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
	"github.com/99minutos/dashboard-workspace/internal/core/identity"
	"github.com/99minutos/dashboard-workspace/internal/workspace"
)

type stubLayoutStore struct {
	layouts map[string][]byte
	err     error
}

func (s *stubLayoutStore) Get(_ context.Context, userID string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	raw, ok := s.layouts[userID]
	if !ok {
		return nil, domain.ErrLayoutNotFound
	}
	return raw, nil
}

func (s *stubLayoutStore) Put(_ context.Context, userID string, raw []byte) error {
	if s.err != nil {
		return s.err
	}
	s.layouts[userID] = raw
	return nil
}

func (s *stubLayoutStore) Delete(_ context.Context, userID string) error {
	if s.err != nil {
		return s.err
	}
	delete(s.layouts, userID)
	return nil
}

func newWorkspaceFixture() (*WorkspaceService, *stubLayoutStore) {
	store := &stubLayoutStore{layouts: make(map[string][]byte)}
	svc := NewWorkspaceService(store, workspace.NewSource(nil), identity.NewContextProvider(), zerolog.Nop())
	return svc, store
}

func TestWorkspaceService_RequiresUser(t *testing.T) {
	svc, _ := newWorkspaceFixture()

	if _, err := svc.Layout(context.Background()); !errors.Is(err, domain.ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
	if _, err := svc.NewTab(context.Background(), "bar", ""); !errors.Is(err, domain.ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
}

func TestWorkspaceService_LayoutFallsBackToDefault(t *testing.T) {
	svc, _ := newWorkspaceFixture()

	m, err := svc.Layout(as(alice))
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if len(m.Tabs()) != len(workspace.Default().Tabs()) {
		t.Fatalf("expected default layout, got %d tabs", len(m.Tabs()))
	}
}

func TestWorkspaceService_SaveThenLoad(t *testing.T) {
	svc, store := newWorkspaceFixture()

	m := workspace.Default()
	m.Layout.Children = m.Layout.Children[:1]
	if err := svc.SaveLayout(as(alice), m); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := store.layouts[alice.ID]; !ok {
		t.Fatalf("expected layout stored for alice")
	}

	got, err := svc.Layout(as(alice))
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if len(got.Tabs()) != len(m.Tabs()) {
		t.Fatalf("expected %d tabs, got %d", len(m.Tabs()), len(got.Tabs()))
	}

	other, err := svc.Layout(as(bob))
	if err != nil {
		t.Fatalf("layout for bob: %v", err)
	}
	if len(other.Tabs()) != len(workspace.Default().Tabs()) {
		t.Fatalf("bob should still see the default layout")
	}
}

func TestWorkspaceService_SaveRejectsInvalidLayout(t *testing.T) {
	svc, store := newWorkspaceFixture()

	m := &workspace.Model{Layout: workspace.Node{Type: workspace.KindTab}}
	if err := svc.SaveLayout(as(alice), m); !errors.Is(err, domain.ErrInvalidLayout) {
		t.Fatalf("expected ErrInvalidLayout, got %v", err)
	}
	if err := svc.SaveLayout(as(alice), nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(store.layouts) != 0 {
		t.Fatalf("nothing should have been stored")
	}
}

func TestWorkspaceService_CorruptStoredLayoutServesDefault(t *testing.T) {
	svc, store := newWorkspaceFixture()
	store.layouts[alice.ID] = []byte(`{"layout":`)

	m, err := svc.Layout(as(alice))
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if m.Validate() != nil {
		t.Fatalf("expected a valid default layout")
	}
}

func TestWorkspaceService_StoreFailure(t *testing.T) {
	svc, store := newWorkspaceFixture()
	store.err = errors.New("connection refused")

	_, err := svc.Layout(as(alice))
	var rse *domain.RemoteStoreError
	if !errors.As(err, &rse) {
		t.Fatalf("expected RemoteStoreError, got %v", err)
	}
}

func TestWorkspaceService_ResetLayout(t *testing.T) {
	svc, store := newWorkspaceFixture()
	store.layouts[alice.ID] = []byte(`{}`)

	if _, err := svc.ResetLayout(as(alice)); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, ok := store.layouts[alice.ID]; ok {
		t.Fatalf("expected saved layout removed")
	}
}

// dropTab appends tab to the first border of the caller's layout and saves it.
func dropTab(t *testing.T, svc *WorkspaceService, u *domain.User, tab workspace.Node) {
	t.Helper()
	m, err := svc.Layout(as(u))
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	m.Borders[0].Children = append(m.Borders[0].Children, tab)
	if err := svc.SaveLayout(as(u), m); err != nil {
		t.Fatalf("save layout: %v", err)
	}
}

func TestWorkspaceService_NewTabNumbersPerUser(t *testing.T) {
	svc, store := newWorkspaceFixture()

	first, err := svc.NewTab(as(alice), "bar", "")
	if err != nil {
		t.Fatalf("new tab: %v", err)
	}
	dropTab(t, svc, alice, first)
	second, _ := svc.NewTab(as(alice), "bar", "")
	bobs, _ := svc.NewTab(as(bob), "line", "Trend")

	if first.Name != "Bar Chart 1" || second.Name != "Bar Chart 2" {
		t.Fatalf("unexpected names %q, %q", first.Name, second.Name)
	}
	if bobs.Name != "Trend 1" {
		t.Fatalf("expected bob's counter to start at 1, got %q", bobs.Name)
	}
	if first.ID == second.ID || !strings.HasPrefix(first.ID, "#") {
		t.Fatalf("unexpected ids %q, %q", first.ID, second.ID)
	}

	// Numbering lives in the saved layout, so a fresh service continues it.
	restarted := NewWorkspaceService(store, workspace.NewSource(nil), identity.NewContextProvider(), zerolog.Nop())
	dropTab(t, restarted, alice, second)
	third, err := restarted.NewTab(as(alice), "pie", "")
	if err != nil {
		t.Fatalf("new tab: %v", err)
	}
	if third.Name != "Pie Chart 3" {
		t.Fatalf("expected numbering to continue after restart, got %q", third.Name)
	}

	if _, err := restarted.ResetLayout(as(alice)); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if again, _ := restarted.NewTab(as(alice), "pie", ""); again.Name != "Pie Chart 1" {
		t.Fatalf("expected numbering to restart with the default layout, got %q", again.Name)
	}

	if _, err := svc.NewTab(as(alice), "spreadsheet", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown component, got %v", err)
	}
}

func TestWorkspaceService_NewTabSurfacesStoreFailure(t *testing.T) {
	svc, store := newWorkspaceFixture()
	store.err = errors.New("connection refused")

	_, err := svc.NewTab(as(alice), "bar", "")

	var rse *domain.RemoteStoreError
	if !errors.As(err, &rse) {
		t.Fatalf("expected RemoteStoreError, got %v", err)
	}
}

package sidebar

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
	"github.com/99minutos/dashboard-workspace/internal/core/identity"
	"github.com/99minutos/dashboard-workspace/internal/core/ports"
)

// fakeRepo serves dashboards per user. When gate is set, Create waits on it.
type fakeRepo struct {
	mu      sync.Mutex
	byUser  map[string][]*domain.Dashboard
	seq     int
	listErr error
	addErr  error
	gate    chan struct{}
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byUser: make(map[string][]*domain.Dashboard)}
}

func (r *fakeRepo) seed(userID string, names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range names {
		r.seq++
		r.byUser[userID] = append(r.byUser[userID], &domain.Dashboard{
			ID: fmt.Sprintf("d%d", r.seq), UserID: userID, Name: n, URL: "#", Icon: "IconUnknown",
		})
	}
}

func (r *fakeRepo) ListAll(ctx context.Context) ([]*domain.Dashboard, error) {
	u, ok := identity.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrAuthenticationRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]*domain.Dashboard(nil), r.byUser[u.ID]...), nil
}

func (r *fakeRepo) Create(ctx context.Context, draft domain.DashboardDraft) (*domain.Dashboard, error) {
	if r.gate != nil {
		<-r.gate
	}
	u, ok := identity.UserFromContext(ctx)
	if !ok {
		return nil, domain.ErrAuthenticationRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addErr != nil {
		return nil, r.addErr
	}
	r.seq++
	d := &domain.Dashboard{ID: fmt.Sprintf("d%d", r.seq), UserID: u.ID, Name: draft.Name, URL: "#", Icon: domain.IconFolder}
	r.byUser[u.ID] = append(r.byUser[u.ID], d)
	return d, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	u, ok := identity.UserFromContext(ctx)
	if !ok {
		return domain.ErrAuthenticationRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.byUser[u.ID]
	for i, d := range list {
		if d.ID == id {
			r.byUser[u.ID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return &domain.RemoteStoreError{Op: "delete dashboard", Err: domain.ErrDashboardNotFound}
}

var (
	alice = &domain.User{ID: "alice"}
	bob   = &domain.User{ID: "bob"}
)

func names(s Snapshot) []string {
	out := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		out = append(out, e.Name)
	}
	return out
}

func TestController_StartsEmpty(t *testing.T) {
	c := NewController(newFakeRepo(), zerolog.Nop())

	snap := c.Snapshot()
	assert.Equal(t, StateEmpty, snap.State)
	assert.Empty(t, snap.Entries)
}

func TestController_SetUserLoadsAndResolvesGlyphs(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("alice", "Sales", "Ops")
	c := NewController(repo, zerolog.Nop())

	var states []State
	c.OnChange(func(s Snapshot) { states = append(states, s.State) })

	c.SetUser(context.Background(), alice)

	snap := c.Snapshot()
	assert.Equal(t, StatePopulated, snap.State)
	assert.Equal(t, []string{"Sales", "Ops"}, names(snap))
	assert.Equal(t, domain.ResolveGlyph(domain.IconFolder), snap.Entries[0].Glyph)
	assert.Equal(t, []State{StateLoading, StatePopulated}, states)
}

func TestController_SignOutClearsImmediately(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("alice", "Sales")
	c := NewController(repo, zerolog.Nop())
	c.SetUser(context.Background(), alice)

	c.SetUser(context.Background(), nil)

	snap := c.Snapshot()
	assert.Equal(t, StateEmpty, snap.State)
	assert.Empty(t, snap.Entries)
	assert.Nil(t, snap.User)
}

func TestController_SwitchingUsersNeverShowsPreviousEntries(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("alice", "Alice's")
	c := NewController(repo, zerolog.Nop())
	c.SetUser(context.Background(), alice)

	repo.listErr = errors.New("network down")
	c.SetUser(context.Background(), bob)

	snap := c.Snapshot()
	assert.Empty(t, snap.Entries)
	require.Len(t, snap.Notices, 1)
	assert.Equal(t, "Could not load your dashboards.", snap.Notices[0].Message)
}

func TestController_LoadFailureKeepsPriorEntries(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("alice", "Sales")
	c := NewController(repo, zerolog.Nop())
	c.SetUser(context.Background(), alice)

	repo.listErr = errors.New("timeout")
	c.SetUser(context.Background(), alice)

	snap := c.Snapshot()
	assert.Equal(t, []string{"Sales"}, names(snap))
	assert.Equal(t, StatePopulated, snap.State)
	assert.Len(t, snap.Notices, 1)
}

func TestController_AddAppendsToEnd(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("alice", "first", "second")
	c := NewController(repo, zerolog.Nop())
	c.SetUser(context.Background(), alice)

	entry, err := c.Add(context.Background(), "  New Dashboard ")
	require.NoError(t, err)
	assert.Equal(t, "New Dashboard", entry.Name)
	assert.Equal(t, []string{"first", "second", "New Dashboard"}, names(c.Snapshot()))
}

func TestController_AddRejectsBlankName(t *testing.T) {
	c := NewController(newFakeRepo(), zerolog.Nop())
	c.SetUser(context.Background(), alice)

	_, err := c.Add(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, c.Snapshot().Notices, 1)
}

func TestController_AddWhileSignedOut(t *testing.T) {
	c := NewController(newFakeRepo(), zerolog.Nop())

	_, err := c.Add(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrAuthenticationRequired)
	assert.Empty(t, c.Snapshot().Entries)
}

func TestController_AddFailureRaisesDismissibleNotice(t *testing.T) {
	repo := newFakeRepo()
	repo.addErr = errors.New("constraint violation")
	c := NewController(repo, zerolog.Nop())
	c.SetUser(context.Background(), alice)

	_, err := c.Add(context.Background(), "x")
	require.Error(t, err)

	snap := c.Snapshot()
	assert.Empty(t, snap.Entries)
	require.Len(t, snap.Notices, 1)

	c.Dismiss(snap.Notices[0].ID)
	assert.Empty(t, c.Snapshot().Notices)

	repo.addErr = nil
	_, err = c.Add(context.Background(), "y")
	assert.NoError(t, err, "a failure must not block further interaction")
}

func TestController_DeleteRemovesByID(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("alice", "same", "same")
	c := NewController(repo, zerolog.Nop())
	c.SetUser(context.Background(), alice)
	target := c.Snapshot().Entries[1].ID

	require.NoError(t, c.Delete(context.Background(), target))

	snap := c.Snapshot()
	require.Len(t, snap.Entries, 1)
	assert.NotEqual(t, target, snap.Entries[0].ID)
}

func TestController_DeleteFailureLeavesList(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("alice", "keep")
	c := NewController(repo, zerolog.Nop())
	c.SetUser(context.Background(), alice)

	err := c.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrDashboardNotFound)
	assert.Equal(t, []string{"keep"}, names(c.Snapshot()))
	assert.Len(t, c.Snapshot().Notices, 1)
}

func TestController_CreateResolvingAfterSignOutIsDiscarded(t *testing.T) {
	repo := newFakeRepo()
	repo.gate = make(chan struct{})
	c := NewController(repo, zerolog.Nop())
	c.SetUser(context.Background(), alice)

	done := make(chan error, 1)
	go func() {
		_, err := c.Add(context.Background(), "late")
		done <- err
	}()

	// Give Add time to capture the current epoch before signing out.
	time.Sleep(20 * time.Millisecond)
	c.SetUser(context.Background(), nil)
	close(repo.gate)

	err := <-done
	assert.True(t, IsStale(err), "got %v", err)
	assert.Empty(t, c.Snapshot().Entries)
	assert.Equal(t, StateEmpty, c.Snapshot().State)
}

// fakeNotifier records the callback registered by Bind.
type fakeNotifier struct {
	userID string
	fn     func(domain.SessionEvent)
}

type noopSub struct{}

func (noopSub) Unsubscribe() {}

func (n *fakeNotifier) Publish(_ context.Context, ev domain.SessionEvent) error {
	if n.fn != nil && ev.UserID == n.userID {
		n.fn(ev)
	}
	return nil
}

func (n *fakeNotifier) OnSessionChange(_ context.Context, userID string, fn func(domain.SessionEvent)) (ports.Subscription, error) {
	n.userID, n.fn = userID, fn
	return noopSub{}, nil
}

func TestController_BindEndsOnOwnSignOut(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("alice", "Sales")
	c := NewController(repo, zerolog.Nop())
	c.SetUser(context.Background(), alice)

	n := &fakeNotifier{}
	sub, err := c.Bind(context.Background(), n, "alice", "tok-laptop")
	require.NoError(t, err)
	defer sub.Unsubscribe()

	require.NoError(t, n.Publish(context.Background(), domain.SessionEvent{Kind: domain.SessionSignedOut, UserID: "alice", TokenID: "tok-phone"}))
	assert.Equal(t, []string{"Sales"}, names(c.Snapshot()), "another device signing out keeps this view")

	require.NoError(t, n.Publish(context.Background(), domain.SessionEvent{Kind: domain.SessionSignedOut, UserID: "alice", TokenID: "tok-laptop"}))
	assert.Empty(t, c.Snapshot().Entries)
	assert.Nil(t, c.Snapshot().User)
	select {
	case <-c.Ended():
	default:
		t.Fatalf("expected controller to end after its own sign-out")
	}

	require.NoError(t, n.Publish(context.Background(), domain.SessionEvent{Kind: domain.SessionSignedIn, UserID: "alice", TokenID: "tok-tablet", User: alice}))
	c.SetUser(context.Background(), alice)
	assert.Empty(t, c.Snapshot().Entries, "an ended view never shows shortcuts again")
	assert.Equal(t, StateEmpty, c.Snapshot().State)
}

func TestController_BindEndsOnSignOutEverywhere(t *testing.T) {
	repo := newFakeRepo()
	repo.seed("alice", "Sales")
	c := NewController(repo, zerolog.Nop())
	c.SetUser(context.Background(), alice)

	n := &fakeNotifier{}
	_, err := c.Bind(context.Background(), n, "alice", "tok-laptop")
	require.NoError(t, err)

	require.NoError(t, n.Publish(context.Background(), domain.SessionEvent{Kind: domain.SessionSignedOut, UserID: "alice"}))
	assert.Empty(t, c.Snapshot().Entries)
	<-c.Ended()
}

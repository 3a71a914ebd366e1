// Package sidebar keeps the per-viewer list of dashboard shortcuts in sync
// with the signed-in identity and the dashboard repository.
package sidebar

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
	"github.com/99minutos/dashboard-workspace/internal/core/identity"
	"github.com/99minutos/dashboard-workspace/internal/core/ports"
)

// State is the lifecycle of the entry list.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StatePopulated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePopulated:
		return "populated"
	default:
		return "empty"
	}
}

// Repository is the part of the dashboard facade the sidebar needs.
type Repository interface {
	ListAll(ctx context.Context) ([]*domain.Dashboard, error)
	Create(ctx context.Context, draft domain.DashboardDraft) (*domain.Dashboard, error)
	Delete(ctx context.Context, id string) error
}

// Entry is one rendered shortcut.
type Entry struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	URL   string         `json:"url"`
	Icon  domain.IconKey `json:"icon"`
	Glyph string         `json:"glyph"`
}

// Notice is a dismissible, non-blocking failure message.
type Notice struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Snapshot is an immutable view of the controller.
type Snapshot struct {
	State   State
	User    *domain.User
	Entries []Entry
	Notices []Notice
}

// Controller owns the sidebar list of one viewer. Every identity change
// bumps an epoch; repository results that belong to an older epoch are
// dropped so a late response never repopulates a signed-out list.
type Controller struct {
	repo Repository
	log  zerolog.Logger

	mu         sync.Mutex
	user       *domain.User
	epoch      uint64
	state      State
	entries    []Entry
	notices    []Notice
	nextNotice int
	onChange   func(Snapshot)

	ended   chan struct{}
	endOnce sync.Once
}

func NewController(repo Repository, log zerolog.Logger) *Controller {
	return &Controller{repo: repo, log: log, nextNotice: 1, ended: make(chan struct{})}
}

// OnChange registers fn to be called with a snapshot after every mutation.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// SetUser switches the viewer identity. nil clears the list at once;
// otherwise the list is reloaded from the repository and replaced wholesale.
func (c *Controller) SetUser(ctx context.Context, u *domain.User) {
	c.mu.Lock()
	if u != nil && c.isEnded() {
		c.mu.Unlock()
		return
	}
	c.epoch++
	epoch := c.epoch
	if u == nil || c.user == nil || c.user.ID != u.ID {
		c.entries = nil
	}
	c.user = u
	if u == nil {
		c.state = StateEmpty
		c.mu.Unlock()
		c.emit()
		return
	}
	c.state = StateLoading
	c.mu.Unlock()
	c.emit()

	items, err := c.repo.ListAll(identity.WithUser(ctx, u))

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.settleLocked()
		c.failLocked("load", err)
		c.mu.Unlock()
		c.emit()
		return
	}
	entries := make([]Entry, 0, len(items))
	for _, d := range items {
		entries = append(entries, toEntry(d))
	}
	c.entries = entries
	c.state = StatePopulated
	c.mu.Unlock()
	c.emit()
}

// Add creates a shortcut and appends it to the end of the list.
func (c *Controller) Add(ctx context.Context, name string) (*Entry, error) {
	name = strings.TrimSpace(name)
	user, epoch, err := c.begin("add")
	if err != nil {
		return nil, err
	}
	if name == "" {
		err := domain.NewValidationError("name is required")
		c.fail("add", err)
		return nil, err
	}

	d, err := c.repo.Create(identity.WithUser(ctx, user), domain.DashboardDraft{Name: name})

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return nil, errStale
	}
	if err != nil {
		c.failLocked("add", err)
		c.mu.Unlock()
		c.emit()
		return nil, err
	}
	entry := toEntry(d)
	c.entries = append(c.entries, entry)
	c.state = StatePopulated
	c.mu.Unlock()
	c.emit()
	return &entry, nil
}

// Delete removes the shortcut with the given server id.
func (c *Controller) Delete(ctx context.Context, id string) error {
	user, epoch, err := c.begin("delete")
	if err != nil {
		return err
	}

	err = c.repo.Delete(identity.WithUser(ctx, user), id)

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return errStale
	}
	if err != nil {
		c.failLocked("delete", err)
		c.mu.Unlock()
		c.emit()
		return err
	}
	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	c.entries = kept
	c.settleLocked()
	c.mu.Unlock()
	c.emit()
	return nil
}

// Dismiss drops one notice. Unknown ids are ignored.
func (c *Controller) Dismiss(id int) {
	c.mu.Lock()
	for i, n := range c.notices {
		if n.ID == id {
			c.notices = append(c.notices[:i], c.notices[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	c.emit()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Bind ties the controller to the session running on tokenID. Signing that
// session out clears the list and ends the controller for good. Sessions of
// the same user on other tokens, signed in or out, leave it untouched.
func (c *Controller) Bind(ctx context.Context, notifier ports.SessionNotifier, userID, tokenID string) (ports.Subscription, error) {
	return notifier.OnSessionChange(ctx, userID, func(ev domain.SessionEvent) {
		if !ev.Ends(tokenID) {
			return
		}
		c.end()
		c.SetUser(ctx, nil)
	})
}

// Ended is closed once the bound session has been signed out.
func (c *Controller) Ended() <-chan struct{} { return c.ended }

func (c *Controller) end() {
	c.endOnce.Do(func() { close(c.ended) })
}

func (c *Controller) isEnded() bool {
	select {
	case <-c.ended:
		return true
	default:
		return false
	}
}

// errStale reports a completion that arrived after the identity changed.
var errStale = errors.New("sidebar: identity changed before the request completed")

// IsStale reports whether err came from a discarded, out-of-date completion.
func IsStale(err error) bool { return errors.Is(err, errStale) }

func (c *Controller) begin(action string) (*domain.User, uint64, error) {
	c.mu.Lock()
	user, epoch := c.user, c.epoch
	c.mu.Unlock()
	if user == nil {
		c.fail(action, domain.ErrAuthenticationRequired)
		return nil, 0, domain.ErrAuthenticationRequired
	}
	return user, epoch, nil
}

func (c *Controller) fail(action string, err error) {
	c.mu.Lock()
	c.failLocked(action, err)
	c.mu.Unlock()
	c.emit()
}

func (c *Controller) failLocked(action string, err error) {
	c.log.Error().Err(err).Str("action", action).Msg("sidebar operation failed")
	c.notices = append(c.notices, Notice{ID: c.nextNotice, Level: "error", Message: noticeText(action, err)})
	c.nextNotice++
}

func (c *Controller) settleLocked() {
	if len(c.entries) > 0 {
		c.state = StatePopulated
		return
	}
	c.state = StateEmpty
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{State: c.state, User: c.user}
	s.Entries = append([]Entry(nil), c.entries...)
	s.Notices = append([]Notice(nil), c.notices...)
	return s
}

func (c *Controller) emit() {
	c.mu.Lock()
	fn := c.onChange
	snap := c.snapshotLocked()
	c.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

func toEntry(d *domain.Dashboard) Entry {
	return Entry{ID: d.ID, Name: d.Name, URL: d.URL, Icon: d.Icon, Glyph: domain.ResolveGlyph(d.Icon)}
}

func noticeText(action string, err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthenticationRequired):
		return "Sign in to manage dashboards."
	case errors.Is(err, domain.ErrValidation):
		return err.Error()
	case action == "load":
		return "Could not load your dashboards."
	case action == "add":
		return "Could not create the dashboard."
	default:
		return "Could not delete the dashboard."
	}
}

package metrics

import (
	"context"
	"errors"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
	"github.com/99minutos/dashboard-workspace/internal/core/ports"
)

// Result maps an operation error to its result label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, domain.ErrAuthenticationRequired), errors.Is(err, domain.ErrForbidden):
		return ResultDenied
	default:
		return ResultError
	}
}

type dashboards struct {
	next ports.DashboardService
}

// InstrumentDashboards counts every call made through svc.
func InstrumentDashboards(svc ports.DashboardService) ports.DashboardService {
	return dashboards{next: svc}
}

func observe(op string, err error) {
	OperationsTotal.WithLabelValues(op, Result(err)).Inc()
}

func (d dashboards) ListAll(ctx context.Context) ([]*domain.Dashboard, error) {
	out, err := d.next.ListAll(ctx)
	observe("list", err)
	return out, err
}

func (d dashboards) GetByID(ctx context.Context, id string) (*domain.Dashboard, error) {
	out, err := d.next.GetByID(ctx, id)
	observe("get", err)
	return out, err
}

func (d dashboards) Create(ctx context.Context, draft domain.DashboardDraft) (*domain.Dashboard, error) {
	out, err := d.next.Create(ctx, draft)
	observe("create", err)
	return out, err
}

func (d dashboards) Update(ctx context.Context, id string, patch domain.DashboardPatch) (*domain.Dashboard, error) {
	out, err := d.next.Update(ctx, id, patch)
	observe("update", err)
	return out, err
}

func (d dashboards) Delete(ctx context.Context, id string) error {
	err := d.next.Delete(ctx, id)
	observe("delete", err)
	return err
}

func (d dashboards) Search(ctx context.Context, query string) ([]*domain.Dashboard, error) {
	out, err := d.next.Search(ctx, query)
	observe("search", err)
	return out, err
}

func (d dashboards) Count(ctx context.Context) (int64, error) {
	n, err := d.next.Count(ctx)
	observe("count", err)
	return n, err
}

func (d dashboards) CountAll(ctx context.Context) (int64, error) {
	n, err := d.next.CountAll(ctx)
	observe("count_all", err)
	return n, err
}

type notifier struct {
	next ports.SessionNotifier
}

// InstrumentNotifier counts successfully published session events.
func InstrumentNotifier(n ports.SessionNotifier) ports.SessionNotifier {
	return notifier{next: n}
}

func (n notifier) Publish(ctx context.Context, ev domain.SessionEvent) error {
	if err := n.next.Publish(ctx, ev); err != nil {
		return err
	}
	SessionEventsTotal.WithLabelValues(string(ev.Kind)).Inc()
	return nil
}

func (n notifier) OnSessionChange(ctx context.Context, userID string, fn func(domain.SessionEvent)) (ports.Subscription, error) {
	return n.next.OnSessionChange(ctx, userID, fn)
}

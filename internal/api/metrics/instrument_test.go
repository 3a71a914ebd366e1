package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
	"github.com/99minutos/dashboard-workspace/internal/core/ports"
)

type stubDashboards struct {
	ports.DashboardService
	err error
}

func (s stubDashboards) Count(context.Context) (int64, error) { return 3, s.err }

func TestInstrumentDashboards_CountsByResult(t *testing.T) {
	okBefore := testutil.ToFloat64(OperationsTotal.WithLabelValues("count", ResultOK))
	deniedBefore := testutil.ToFloat64(OperationsTotal.WithLabelValues("count", ResultDenied))

	if n, err := InstrumentDashboards(stubDashboards{}).Count(context.Background()); err != nil || n != 3 {
		t.Fatalf("unexpected result %d, %v", n, err)
	}
	_, _ = InstrumentDashboards(stubDashboards{err: domain.ErrAuthenticationRequired}).Count(context.Background())

	if got := testutil.ToFloat64(OperationsTotal.WithLabelValues("count", ResultOK)) - okBefore; got != 1 {
		t.Fatalf("expected one ok observation, got %v", got)
	}
	if got := testutil.ToFloat64(OperationsTotal.WithLabelValues("count", ResultDenied)) - deniedBefore; got != 1 {
		t.Fatalf("expected one denied observation, got %v", got)
	}
}

func TestResult(t *testing.T) {
	cases := map[error]string{
		nil:                              ResultOK,
		domain.ErrForbidden:              ResultDenied,
		domain.ErrAuthenticationRequired: ResultDenied,
		errors.New("boom"):               ResultError,
	}
	for err, want := range cases {
		if got := Result(err); got != want {
			t.Fatalf("Result(%v) = %s, want %s", err, got, want)
		}
	}
}

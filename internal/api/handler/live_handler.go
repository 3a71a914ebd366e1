package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/99minutos/dashboard-workspace/internal/api/metrics"
	"github.com/99minutos/dashboard-workspace/internal/api/middleware"
	"github.com/99minutos/dashboard-workspace/internal/core/domain"
	"github.com/99minutos/dashboard-workspace/internal/core/identity"
	"github.com/99minutos/dashboard-workspace/internal/core/ports"
	"github.com/99minutos/dashboard-workspace/internal/sidebar"
	"github.com/99minutos/dashboard-workspace/internal/ui"
)

const liveWriteTimeout = 10 * time.Second

// liveIntent is one form submission sent by the htmx websocket extension.
type liveIntent struct {
	Intent string `json:"intent"`
	Name   string `json:"name"`
	ID     string `json:"id"`
	Notice string `json:"notice"`
}

// Live handles GET /ui/live. Each connection owns one sidebar controller:
// intents from the socket are applied in order, session changes for the
// user arrive from the notifier, and every resulting state is pushed back
// as an out-of-band sidebar fragment.
func (h *UIHandler) Live(c echo.Context) error {
	user, ok := identity.UserFromContext(c.Request().Context())
	if !ok {
		return domain.ErrAuthenticationRequired
	}

	conn, err := websocket.Accept(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket upgrade failed")
		return nil
	}
	defer conn.CloseNow()

	metrics.LiveConnections.Inc()
	defer metrics.LiveConnections.Dec()

	log := h.log.With().Str("user_id", user.ID).Logger()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	dirty := make(chan struct{}, 1)
	ctrl := sidebar.NewController(h.dashboards, log)
	ctrl.OnChange(func(sidebar.Snapshot) {
		select {
		case dirty <- struct{}{}:
		default:
		}
	})

	claims, _ := c.Get(middleware.ClaimsKey).(ports.TokenClaims)
	sub, err := ctrl.Bind(ctx, h.notifier, user.ID, claims.TokenID)
	if err != nil {
		log.Error().Err(err).Msg("subscribe to session changes failed")
		conn.Close(websocket.StatusInternalError, "session feed unavailable")
		return nil
	}
	defer sub.Unsubscribe()

	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		select {
		case <-gctx.Done():
		case <-ctrl.Ended():
			log.Info().Msg("session signed out, closing live connection")
			_ = conn.Close(websocket.StatusPolicyViolation, "session signed out")
			cancel()
		}
		return nil
	})
	grp.Go(func() error { return h.pushSnapshots(gctx, conn, ctrl, dirty) })
	grp.Go(func() error {
		defer cancel()
		ctrl.SetUser(gctx, user)
		return h.readIntents(gctx, conn, ctrl, log)
	})

	if err := grp.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn().Err(err).Msg("live connection ended")
		return nil
	}
	conn.Close(websocket.StatusNormalClosure, "")
	return nil
}

func (h *UIHandler) pushSnapshots(ctx context.Context, conn *websocket.Conn, ctrl *sidebar.Controller, dirty <-chan struct{}) error {
	var buf bytes.Buffer
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-dirty:
		}

		buf.Reset()
		if err := ui.SidebarUpdate(ctrl.Snapshot()).Render(&buf); err != nil {
			return err
		}
		wctx, cancel := context.WithTimeout(ctx, liveWriteTimeout)
		err := conn.Write(wctx, websocket.MessageText, buf.Bytes())
		cancel()
		if err != nil {
			if isEnded(ctrl) {
				return nil
			}
			return err
		}
	}
}

func (h *UIHandler) readIntents(ctx context.Context, conn *websocket.Conn, ctrl *sidebar.Controller, log zerolog.Logger) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}
			if ctx.Err() != nil || isEnded(ctrl) {
				return nil
			}
			return err
		}

		var in liveIntent
		if err := json.Unmarshal(data, &in); err != nil {
			log.Debug().Err(err).Msg("ignoring malformed intent")
			continue
		}

		// Failures surface as sidebar notices; the loop keeps going.
		switch in.Intent {
		case "add":
			_, _ = ctrl.Add(ctx, in.Name)
		case "delete":
			_ = ctrl.Delete(ctx, in.ID)
		case "dismiss":
			if id, err := strconv.Atoi(in.Notice); err == nil {
				ctrl.Dismiss(id)
			}
		default:
			log.Debug().Str("intent", in.Intent).Msg("ignoring unknown intent")
		}
	}
}

func isEnded(ctrl *sidebar.Controller) bool {
	select {
	case <-ctrl.Ended():
		return true
	default:
		return false
	}
}

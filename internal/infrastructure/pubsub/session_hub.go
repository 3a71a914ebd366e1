// Package pubsub fans session changes out to every live view of a user
// through an in-process watermill GoChannel.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/99minutos/dashboard-workspace/internal/core/domain"
	"github.com/99minutos/dashboard-workspace/internal/core/ports"
)

const (
	topicPrefix   = "session."
	metaEventKind = "kind"
	outputBuffer  = 64
)

// SessionHub implements ports.SessionNotifier.
type SessionHub struct {
	ps  *gochannel.GoChannel
	log zerolog.Logger
	wg  sync.WaitGroup
}

func NewSessionHub(log zerolog.Logger) *SessionHub {
	return &SessionHub{
		ps:  gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: outputBuffer}, newLoggerAdapter(log)),
		log: log,
	}
}

// Publish delivers ev to the subscribers of ev.UserID. Events for a user
// without listeners are dropped.
func (h *SessionHub) Publish(_ context.Context, ev domain.SessionEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode session event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(metaEventKind, string(ev.Kind))

	return h.ps.Publish(topic(ev.UserID), msg)
}

// OnSessionChange runs fn for each event of userID on a dedicated goroutine,
// one event at a time, until the subscription is released.
func (h *SessionHub) OnSessionChange(ctx context.Context, userID string, fn func(domain.SessionEvent)) (ports.Subscription, error) {
	subCtx, cancel := context.WithCancel(ctx)

	msgs, err := h.ps.Subscribe(subCtx, topic(userID))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("subscribe session events: %w", err)
	}

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		for msg := range msgs {
			var ev domain.SessionEvent
			if err := json.Unmarshal(msg.Payload, &ev); err != nil {
				h.log.Error().Err(err).Str("msg_id", msg.UUID).Msg("malformed session event")
				msg.Ack()
				continue
			}
			fn(ev)
			msg.Ack()
		}
	}()

	return &subscription{cancel: cancel}, nil
}

// Close stops the hub and waits for every subscriber loop to return.
func (h *SessionHub) Close() error {
	err := h.ps.Close()
	h.wg.Wait()
	return err
}

func topic(userID string) string {
	return topicPrefix + userID
}

type subscription struct {
	once   sync.Once
	cancel context.CancelFunc
}

func (s *subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

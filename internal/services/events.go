package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/carevault/apiserver/types"
	"go.uber.org/zap"
)

const publishTimeout = 3 * time.Second

// Publisher is satisfied by *mq.MQ.
type Publisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

// Events publishes domain events after successful mutations. Failures are
// logged and never returned to the caller. A nil *Events is a no-op.
type Events struct {
	publisher Publisher
	channel   string
	logger    *zap.Logger
	now       func() time.Time
}

func NewEvents(publisher Publisher, channel string, logger *zap.Logger) *Events {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Events{publisher: publisher, channel: channel, logger: logger, now: time.Now}
}

func (e *Events) emit(ctx context.Context, name string, actorID, resourceID int, payload any) {
	if e == nil || e.publisher == nil {
		return
	}

	event := types.Event{
		Name:       name,
		ActorID:    actorID,
		ResourceID: resourceID,
		OccurredAt: e.now().UTC(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			e.logger.Warn("encode event payload", zap.String("event", name), zap.Error(err))
			return
		}
		event.Payload = raw
	}
	data, err := json.Marshal(event)
	if err != nil {
		e.logger.Warn("encode event", zap.String("event", name), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if _, err := e.publisher.Publish(ctx, e.channel, data, map[string]string{"event": name}); err != nil {
		e.logger.Warn("publish event",
			zap.String("event", name),
			zap.Int("resource_id", resourceID),
			zap.Error(err),
		)
	}
}

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

type Handler func(ctx context.Context, event Event) error

// Bus delivers events to subscribed handlers synchronously, in subscription order.
// Every handler runs even if an earlier one failed; the failures are joined.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
	logger   logrus.FieldLogger
}

func NewBus(logger logrus.FieldLogger) *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
		logger:   logger,
	}
}

func (b *Bus) Subscribe(t Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], handler)
}

func (b *Bus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	entry := b.logger.WithFields(logrus.Fields{
		"event":        string(event.Type),
		"source":       string(event.Source),
		"aggregate_id": event.AggregateID,
	})
	if len(handlers) == 0 {
		entry.Debug("event_unhandled")
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("publish %s: %w", event.Type, errors.Join(errs...))
	}

	entry.Debug("event_published")
	return nil
}

package events

import (
	"context"
	"errors"
	"log/slog"
)

// Dispatcher delivers a session's events to the handlers subscribed to
// their type. It is owned by one session and is not safe for concurrent
// use.
type Dispatcher struct {
	byType map[string][]EventHandler
	logger *slog.Logger
}

var _ EventEmitter = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with no subscriptions.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		byType: make(map[string][]EventHandler),
		logger: logger.With(slog.String("component", "event_dispatcher")),
	}
}

// Subscribe registers handler for the given event types. A handler
// subscribed twice to a type is called twice.
func (d *Dispatcher) Subscribe(handler EventHandler, eventTypes ...string) {
	for _, t := range eventTypes {
		d.byType[t] = append(d.byType[t], handler)
	}
}

// EmitEvent calls every handler subscribed to event.Type in subscription
// order. A failing handler does not stop the others; all failures are
// returned joined. Events nobody subscribed to are dropped.
func (d *Dispatcher) EmitEvent(ctx context.Context, event *Event) error {
	handlers := d.byType[event.Type]
	if len(handlers) == 0 {
		d.logger.Debug("no handlers for event", slog.String("event_type", event.Type))
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			d.logger.Error("handler failed to process event",
				slog.String("error", err.Error()),
				slog.String("event_id", event.ID.String()),
				slog.String("event_type", event.Type))
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/events"
	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/logger"
)

// EventTaskPrefix prefixes the Type of tasks created from events.
const EventTaskPrefix = "event:"

// EventTaskHandler implements events.EventHandler by queueing delivery to a
// wrapped handler. The emitter returns as soon as the task is queued.
type EventTaskHandler struct {
	next   events.EventHandler
	queue  TaskQueueWriter
	logger *slog.Logger
}

var _ events.EventHandler = (*EventTaskHandler)(nil)

// NewEventTaskHandler wraps next so that it runs on the worker pool fed by queue.
func NewEventTaskHandler(next events.EventHandler, queue TaskQueueWriter, logger *slog.Logger) *EventTaskHandler {
	if next == nil || queue == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("handler and queue cannot be nil for EventTaskHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EventTaskHandler{
		next:   next,
		queue:  queue,
		logger: logger.With(slog.String("component", "event_task_handler")),
	}
}

// HandleEvent queues the event for background delivery. A full or closed
// queue is reported to the emitter; the event is dropped.
func (h *EventTaskHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	log := logger.FromContextOrDefault(ctx, h.logger)

	if err := h.queue.Enqueue(h.newTask(event)); err != nil {
		log.Warn("dropping event",
			slog.String("event_id", event.ID.String()),
			slog.String("event_type", event.Type),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to queue event %s: %w", event.Type, err)
	}
	return nil
}

func (h *EventTaskHandler) newTask(event *events.Event) Task {
	return &FuncTask{
		TaskID:   event.ID,
		TaskType: EventTaskPrefix + event.Type,
		Fn: func(ctx context.Context) error {
			log := h.logger.With(
				slog.String("event_id", event.ID.String()),
				slog.String("user_id", event.UserID.String()))
			return h.next.HandleEvent(logger.WithLogger(ctx, log), event)
		},
	}
}

// Package events provides fire-and-forget notification delivery for
// lifecycle transitions. Emission failures are logged and never
// propagate back to the transition that triggered them.
package events

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/workielk/workie-api/internal/logger"
)

// EventType represents the kind of lifecycle notification
type EventType string

const (
	// EventApplicationReceived is emitted when a worker applies to a job
	EventApplicationReceived EventType = "application_received"
	// EventApplicationAccepted is emitted when a client accepts an application
	EventApplicationAccepted EventType = "application_accepted"
	// EventApplicationRejected is emitted when a client rejects an application
	EventApplicationRejected EventType = "application_rejected"
	// EventApplicationWithdrawn is emitted when a worker withdraws an application
	EventApplicationWithdrawn EventType = "application_withdrawn"
	// EventWorkStarted is emitted when the assigned worker starts the work
	EventWorkStarted EventType = "work_started"
	// EventWorkCompleted is emitted when the assigned worker completes the work
	EventWorkCompleted EventType = "work_completed"
	// EventPaymentReleased is emitted when the client releases payment
	EventPaymentReleased EventType = "payment_released"
	// EventPaymentConfirmed is emitted when the worker confirms payment
	EventPaymentConfirmed EventType = "payment_confirmed"
	// EventReviewSubmitted is emitted when the client submits a review
	EventReviewSubmitted EventType = "review_submitted"
	// EventJobClosed is emitted when either party closes the engagement
	EventJobClosed EventType = "job_closed"

	// EventChannelSize is the buffer size for the event channel
	EventChannelSize = 100
)

// Event represents a single lifecycle notification
type Event struct {
	ID            string                 // Unique event id
	Type          EventType              // The kind of notification
	RecipientID   uint                   // The counter-party being notified
	SenderID      uint                   // The actor who triggered the transition
	JobID         uint                   // The job involved
	ApplicationID uint                   // The application involved, if any
	Fields        map[string]interface{} // Additional context fields
}

// Handler is a function that handles an event
type Handler func(context.Context, Event) error

var (
	handlers   = make(map[EventType][]Handler)
	handlersMu sync.RWMutex
	eventChan  = make(chan Event, EventChannelSize)
)

// Subscribe registers a handler for a specific event type
func Subscribe(eventType EventType, handler Handler) {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	handlers[eventType] = append(handlers[eventType], handler)
	logger.Debugf("Registered handler for event type: %s", eventType)
}

// Publish queues an event for delivery. It never blocks the caller: if
// the buffer is full the event is dropped with a warning, because a
// slow notification pipeline must not stall a lifecycle transition.
func Publish(event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	select {
	case eventChan <- event:
		logger.Debugf("Published event %s (%s)", event.Type, event.ID)
	default:
		logger.WarnWithFields("Event buffer full, dropping notification", map[string]interface{}{
			"type":   event.Type,
			"job_id": event.JobID,
		})
	}
}

// Start starts the event processing loop
func Start(ctx context.Context) {
	go processEvents(ctx)
	logger.Info("Started notification event loop")
}

func processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping notification event loop")
			return
		case event := <-eventChan:
			handlersMu.RLock()
			eventHandlers := handlers[event.Type]
			handlersMu.RUnlock()

			for _, handler := range eventHandlers {
				go func(h Handler, e Event) {
					if err := h(ctx, e); err != nil {
						logger.ErrorWithFields("Failed to handle event", map[string]interface{}{
							"type":  e.Type,
							"id":    e.ID,
							"error": err.Error(),
						})
					}
				}(handler, event)
			}
		}
	}
}

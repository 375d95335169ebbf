package services

import (
	"context"

	"github.com/workielk/workie-api/internal/events"
	"github.com/workielk/workie-api/internal/logger"
)

// notificationEventTypes lists every lifecycle event that produces a
// notification to the counter-party.
var notificationEventTypes = []events.EventType{
	events.EventApplicationReceived,
	events.EventApplicationAccepted,
	events.EventApplicationRejected,
	events.EventApplicationWithdrawn,
	events.EventWorkStarted,
	events.EventWorkCompleted,
	events.EventPaymentReleased,
	events.EventPaymentConfirmed,
	events.EventReviewSubmitted,
	events.EventJobClosed,
}

// RegisterNotificationHandlers subscribes the notification sink for
// every lifecycle event type. Delivery to push/email channels is an
// external collaborator; the default sink records the notification in
// the application log.
func RegisterNotificationHandlers() {
	for _, eventType := range notificationEventTypes {
		events.Subscribe(eventType, logNotification)
	}
}

func logNotification(_ context.Context, e events.Event) error {
	logger.InfoWithFields("notification", map[string]interface{}{
		"type":           e.Type,
		"recipient_id":   e.RecipientID,
		"sender_id":      e.SenderID,
		"job_id":         e.JobID,
		"application_id": e.ApplicationID,
	})
	return nil
}

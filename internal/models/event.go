package models

// EventKind classifies a notification event.
type EventKind string

const (
	// EventNew announces an entry seen for the first time.
	EventNew EventKind = "new"
	// EventReminder repeats a previously announced, still-open entry
	// on the configured reminder day.
	EventReminder EventKind = "reminder"
	// EventHeartbeat is the periodic liveness message.
	EventHeartbeat EventKind = "heartbeat"
	// EventAlert surfaces an upstream contract change or another
	// condition an operator must look at.
	EventAlert EventKind = "alert"
)

// NotificationEvent is one message the monitor wants delivered. The
// notifier gateway owns formatting and transport; the reconciler owns
// the decision to send and the state commit afterwards.
type NotificationEvent struct {
	Kind  EventKind
	Entry *Entry // set for new/reminder events

	// OpenCount carries the number of currently open entries for
	// heartbeat events.
	OpenCount int

	// AlertMessage carries the operator-facing text for alert events.
	AlertMessage string
}

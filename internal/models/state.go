package models

import "time"

// StateEntry is the persisted record of an entry that has already been
// notified at least once.
type StateEntry struct {
	// EndDate is the last known end date in canonical text form, or
	// nil when the source never exposed one.
	EndDate *string `json:"end_date"`

	// LastReminderSent is the YYYY-MM-DD day of the last delivered
	// reminder. It is only set after a reminder notification is
	// confirmed delivered.
	LastReminderSent *string `json:"last_reminder_sent"`
}

// MonitorState is the process-wide persisted state. It is loaded at
// the start of every run and mutated only after a notification attempt
// succeeds.
type MonitorState struct {
	Items map[string]StateEntry `json:"items"`

	// LastHeartbeat is the RFC3339 timestamp of the last delivered
	// liveness notification. Heartbeat cadence is configurable, so a
	// timestamp is stored rather than a day.
	LastHeartbeat *string `json:"last_heartbeat"`
}

// NewMonitorState returns an empty state, the shape used on first run
// when no state file exists yet.
func NewMonitorState() *MonitorState {
	return &MonitorState{Items: make(map[string]StateEntry)}
}

// Has reports whether an entry id has been seen before.
func (s *MonitorState) Has(id string) bool {
	_, ok := s.Items[id]
	return ok
}

// OpenItemCount counts tracked items whose stored end date is strictly
// after today. Items with unknown or unparseable end dates are not
// counted as open.
func (s *MonitorState) OpenItemCount(today time.Time) int {
	count := 0
	for _, item := range s.Items {
		if item.EndDate == nil {
			continue
		}
		endDate, err := ParseEndDate(*item.EndDate)
		if err != nil {
			continue
		}
		if endDate.After(today) {
			count++
		}
	}
	return count
}

// HeartbeatDue reports whether the last delivered heartbeat is at
// least one interval old. A missing or unparseable timestamp counts
// as due; worst case is one extra liveness message.
func (s *MonitorState) HeartbeatDue(now time.Time, interval time.Duration) bool {
	if s.LastHeartbeat == nil {
		return true
	}
	last, err := time.Parse(time.RFC3339, *s.LastHeartbeat)
	if err != nil {
		return true
	}
	return now.Sub(last) >= interval
}

// RecordHeartbeat stamps the heartbeat timestamp. Called only after
// delivery is confirmed.
func (s *MonitorState) RecordHeartbeat(now time.Time) {
	stamp := now.Format(time.RFC3339)
	s.LastHeartbeat = &stamp
}

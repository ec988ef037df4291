package config

import (
	"strings"
	"time"
)

// MonitorConfig defines configuration for the change detector. The
// source scripts disagreed across their own iterations on reminder
// weekday and heartbeat cadence, so both are policy knobs here rather
// than constants.
type MonitorConfig struct {
	StateFile              string `json:"state_file,omitempty" yaml:"state_file,omitempty"`
	ReminderWeekday        string `json:"reminder_weekday,omitempty" yaml:"reminder_weekday,omitempty" validate:"omitempty,weekday"`
	HeartbeatIntervalHours int    `json:"heartbeat_interval_hours,omitempty" yaml:"heartbeat_interval_hours,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultMonitorConfig creates default monitor configuration
func NewDefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		StateFile:              DefaultStateFile,
		ReminderWeekday:        DefaultReminderWeekday,
		HeartbeatIntervalHours: DefaultHeartbeatIntervalHours,
	}
}

// ReminderDay returns the configured reminder weekday, defaulting to
// Saturday when unset or unrecognized. Validation catches unknown
// names earlier; the fallback keeps the zero config usable.
func (mc *MonitorConfig) ReminderDay() time.Weekday {
	if day, ok := parseWeekday(mc.ReminderWeekday); ok {
		return day
	}
	return time.Saturday
}

func parseWeekday(name string) (time.Weekday, bool) {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(day.String(), name) {
			return day, true
		}
	}
	return time.Sunday, false
}

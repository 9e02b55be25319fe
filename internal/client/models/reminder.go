// Package models defines the data shapes exchanged with the Amparo backend.
package models

import "time"

// DatetimeLayout is the backend's reminder timestamp format: an ISO-8601
// local time without zone offset, e.g. "2026-01-02T08:00:00".
const DatetimeLayout = "2006-01-02T15:04:05"

// Reminder is a server-owned reminder record. The client holds an ephemeral,
// refresh-on-demand copy.
type Reminder struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Datetime string `json:"datetime"`
}

// When parses the reminder's datetime in the given location. The backend
// emits naive local timestamps; timestamps carrying an explicit offset
// (RFC 3339) are also accepted.
func (r Reminder) When(loc *time.Location) (time.Time, error) {
	if ts, err := time.ParseInLocation(DatetimeLayout, r.Datetime, loc); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, r.Datetime)
}

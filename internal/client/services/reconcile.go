package services

import (
	"sort"
	"time"

	"github.com/amparo-app/amparo-cli/internal/client/models"
)

// Binding pairs a reminder's server id with the local notification handle
// currently armed for it.
type Binding struct {
	ReminderID     string
	NotificationID string
}

// ScheduleAction arms one new notification for a reminder.
type ScheduleAction struct {
	ReminderID string
	Text       string
	At         time.Time
}

// Plan is the outcome of a reconciliation pass: which notifications to
// cancel, which bindings to drop outright, and which reminders to arm anew.
// Cancels are applied before schedules so a reminder is never briefly
// double-armed.
type Plan struct {
	Cancel   []Binding
	Drop     []string
	Schedule []ScheduleAction
}

// Reconcile computes the actions that bring the local notification bindings
// into agreement with the authoritative reminder list.
//
// Rules, per fetched reminder:
//   - datetime strictly in the future: cancel any existing binding first,
//     then schedule a fresh notification. The unconditional cancel-then-
//     reschedule makes the pass idempotent whether or not content changed.
//   - datetime elapsed or unparsable: cancel and drop any binding; never
//     schedule.
//
// Bindings whose reminder id is absent from the fetched list are orphans
// (deleted out-of-band) and are cancelled and dropped as well.
//
// The function is pure: it touches neither the device scheduler nor storage.
func Reconcile(bindings map[string]string, reminders []models.Reminder, now time.Time, loc *time.Location) Plan {
	var plan Plan

	seen := make(map[string]struct{}, len(reminders))
	for _, r := range reminders {
		seen[r.ID] = struct{}{}

		at, err := r.When(loc)
		if err != nil || !at.After(now) {
			if nid, ok := bindings[r.ID]; ok {
				plan.Cancel = append(plan.Cancel, Binding{ReminderID: r.ID, NotificationID: nid})
				plan.Drop = append(plan.Drop, r.ID)
			}
			continue
		}

		if nid, ok := bindings[r.ID]; ok {
			plan.Cancel = append(plan.Cancel, Binding{ReminderID: r.ID, NotificationID: nid})
		}
		plan.Schedule = append(plan.Schedule, ScheduleAction{ReminderID: r.ID, Text: r.Text, At: at})
	}

	var orphans []string
	for id := range bindings {
		if _, ok := seen[id]; !ok {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		plan.Cancel = append(plan.Cancel, Binding{ReminderID: id, NotificationID: bindings[id]})
		plan.Drop = append(plan.Drop, id)
	}

	return plan
}

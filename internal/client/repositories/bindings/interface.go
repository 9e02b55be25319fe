// Package bindings persists the mapping from a reminder's server id to the
// local notification handle currently armed for it. The invariant upheld by
// callers: at most one live binding per active future reminder, zero for past
// or removed reminders.
package bindings

import "context"

type Repository interface {
	// Get returns the notification id bound to reminderID, or ("", nil) when
	// no binding exists.
	Get(ctx context.Context, reminderID string) (string, error)
	Set(ctx context.Context, reminderID, notificationID string) error
	Delete(ctx context.Context, reminderID string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}

// Package services contains the application services of the Amparo client:
// authentication, reminders with local notification reconciliation, health
// logs, emergencies, and chat. Services sit between the CLI and the REST
// client and own all local persistence.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmhodges/clock"

	"github.com/amparo-app/amparo-cli/internal/client/api"
	"github.com/amparo-app/amparo-cli/internal/client/models"
	"github.com/amparo-app/amparo-cli/internal/client/notify"
	"github.com/amparo-app/amparo-cli/internal/client/repositories/bindings"
	"github.com/amparo-app/amparo-cli/internal/common"
	"github.com/amparo-app/amparo-cli/internal/keyedmutex"
	"github.com/amparo-app/amparo-cli/internal/logging"
)

// ReminderService keeps device-local scheduled notifications consistent with
// the server's reminder set: at most one live notification per future
// reminder, none for past or removed ones.
type ReminderService interface {
	// Refresh fetches the authoritative reminder list and runs a full
	// reconciliation pass over the local bindings.
	Refresh(ctx context.Context) ([]models.Reminder, error)

	Create(ctx context.Context, text, datetime string) (*models.Reminder, error)
	Update(ctx context.Context, id, text, datetime string) (*models.Reminder, error)
	Delete(ctx context.Context, id string) error
}

type reminderService struct {
	client   api.Client
	bindings bindings.Repository
	notifier notify.Notifier
	clk      clock.Clock
	loc      *time.Location
	locks    *keyedmutex.KeyedMutex
	log      logging.Logger
}

func NewReminderService(client api.Client, repo bindings.Repository, notifier notify.Notifier, clk clock.Clock, log logging.Logger) ReminderService {
	return &reminderService{
		client:   client,
		bindings: repo,
		notifier: notifier,
		clk:      clk,
		loc:      time.Local,
		locks:    keyedmutex.New(),
		log:      log,
	}
}

func (s *reminderService) Refresh(ctx context.Context) ([]models.Reminder, error) {
	reminders, err := s.client.ListReminders(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.bindings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading bindings: %w", err)
	}

	plan := Reconcile(snapshot, reminders, s.clk.Now(), s.loc)

	// Per-reminder failures degrade that reminder only; the pass carries on.
	for _, id := range plan.Drop {
		if err := s.disarm(ctx, id); err != nil {
			s.log.Warn(ctx, "failed to disarm reminder notification", "id", id, "error", err)
		}
	}
	for _, a := range plan.Schedule {
		if err := s.rearm(ctx, a.ReminderID, a.Text, a.At); err != nil {
			s.log.Warn(ctx, "failed to arm reminder notification", "id", a.ReminderID, "error", err)
		}
	}

	return reminders, nil
}

func (s *reminderService) Create(ctx context.Context, text, datetime string) (*models.Reminder, error) {
	if err := validateReminder(text, datetime, s.loc); err != nil {
		return nil, err
	}

	rec, err := s.client.CreateReminder(ctx, strings.TrimSpace(text), datetime)
	if err != nil {
		return nil, err
	}

	s.armIfFuture(ctx, *rec)
	return rec, nil
}

func (s *reminderService) Update(ctx context.Context, id, text, datetime string) (*models.Reminder, error) {
	if err := validateReminder(text, datetime, s.loc); err != nil {
		return nil, err
	}

	rec, err := s.client.UpdateReminder(ctx, id, strings.TrimSpace(text), datetime)
	if err != nil {
		return nil, err
	}

	s.armIfFuture(ctx, *rec)
	return rec, nil
}

func (s *reminderService) Delete(ctx context.Context, id string) error {
	if err := s.disarm(ctx, id); err != nil {
		return err
	}
	return s.client.DeleteReminder(ctx, id)
}

func validateReminder(text, datetime string, loc *time.Location) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: reminder text is required", common.ErrorValidation)
	}
	if _, err := (models.Reminder{Datetime: datetime}).When(loc); err != nil {
		return fmt.Errorf("%w: invalid datetime %q", common.ErrorValidation, datetime)
	}
	return nil
}

// armIfFuture maintains the single binding for a just-created or just-edited
// reminder: re-armed when its trigger is still ahead, disarmed otherwise.
func (s *reminderService) armIfFuture(ctx context.Context, r models.Reminder) {
	at, err := r.When(s.loc)
	if err != nil {
		s.log.Warn(ctx, "reminder has unparsable datetime, not scheduling", "id", r.ID, "datetime", r.Datetime)
		return
	}
	if !at.After(s.clk.Now()) {
		if err := s.disarm(ctx, r.ID); err != nil {
			s.log.Warn(ctx, "failed to disarm past reminder", "id", r.ID, "error", err)
		}
		return
	}
	if err := s.rearm(ctx, r.ID, r.Text, at); err != nil {
		s.log.Warn(ctx, "failed to arm reminder notification", "id", r.ID, "error", err)
	}
}

// rearm cancels whatever notification is currently bound to the reminder and
// arms a fresh one. The per-id lock serializes concurrent cancel/reschedule
// sequences for the same reminder; the binding is re-read under the lock so
// a stale snapshot can never leave two live notifications.
func (s *reminderService) rearm(ctx context.Context, id, text string, at time.Time) error {
	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	cur, err := s.bindings.Get(ctx, id)
	if err != nil {
		return err
	}
	if cur != "" {
		if err := s.notifier.Cancel(ctx, cur); err != nil {
			return err
		}
	}

	nid, err := s.notifier.Schedule(ctx, text, at)
	if err != nil {
		return err
	}
	return s.bindings.Set(ctx, id, nid)
}

// disarm cancels and forgets the notification bound to the reminder, if any.
func (s *reminderService) disarm(ctx context.Context, id string) error {
	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	cur, err := s.bindings.Get(ctx, id)
	if err != nil {
		return err
	}
	if cur == "" {
		return nil
	}
	if err := s.notifier.Cancel(ctx, cur); err != nil {
		return err
	}
	return s.bindings.Delete(ctx, id)
}

package cli

import (
	"context"
	"fmt"
	"os"
)

// Reminders fetches the reminder list and re-arms local notifications.
func (a *App) Reminders(ctx context.Context) error {
	list, err := a.reminders.Refresh(ctx)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}

	if len(list) == 0 {
		printlnFn("No reminders.")
		return nil
	}
	for _, r := range list {
		printlnFn(fmt.Sprintf("[%s] %s at %s", r.ID, r.Text, r.Datetime))
	}
	return nil
}

func (a *App) AddReminder(ctx context.Context) error {
	text, err := getSimpleText(a.reader, "Reminder text", os.Stdout)
	if err != nil {
		return err
	}

	datetime, err := getSimpleText(a.reader, "When? (YYYY-MM-DDTHH:MM:SS)", os.Stdout)
	if err != nil {
		return err
	}

	rec, err := a.reminders.Create(ctx, text, datetime)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}

	printlnFn("Reminder created:", rec.ID)
	return nil
}

func (a *App) EditReminder(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Reminder id", os.Stdout)
	if err != nil {
		return err
	}

	text, err := getSimpleText(a.reader, "New text", os.Stdout)
	if err != nil {
		return err
	}

	datetime, err := getSimpleText(a.reader, "New time (YYYY-MM-DDTHH:MM:SS)", os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.reminders.Update(ctx, id, text, datetime); err != nil {
		a.reportErr(ctx, err)
		return err
	}

	printlnFn("Reminder updated.")
	return nil
}

func (a *App) DeleteReminder(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Reminder id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.reminders.Delete(ctx, id); err != nil {
		a.reportErr(ctx, err)
		return err
	}

	printlnFn("Reminder deleted.")
	return nil
}

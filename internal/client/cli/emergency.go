package cli

import (
	"context"
	"fmt"
	"os"
)

// Emergency raises an alert. Both prompts accept empty input so the user can
// just press Enter twice in a hurry.
func (a *App) Emergency(ctx context.Context) error {
	kind, err := getSimpleText(a.reader, "Emergency type (Enter for default)", os.Stdout)
	if err != nil {
		return err
	}

	message, err := getSimpleText(a.reader, "Message (optional)", os.Stdout)
	if err != nil {
		return err
	}

	rec, err := a.emergency.Report(ctx, kind, message)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}

	printlnFn("Emergency reported:", rec.Type)
	return nil
}

// Emergencies lists past emergency events.
func (a *App) Emergencies(ctx context.Context) error {
	list, err := a.emergency.List(ctx)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}

	if len(list) == 0 {
		printlnFn("No emergencies recorded.")
		return nil
	}
	for _, e := range list {
		line := fmt.Sprintf("%s: %s", e.Timestamp, e.Type)
		if e.Message != "" {
			line += " (" + e.Message + ")"
		}
		printlnFn(line)
	}
	return nil
}

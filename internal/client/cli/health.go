package cli

import (
	"context"
	"fmt"
	"os"
)

// Health lists the stored health measurements.
func (a *App) Health(ctx context.Context) error {
	list, err := a.health.List(ctx)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}

	if len(list) == 0 {
		printlnFn("No health records.")
		return nil
	}
	for _, rec := range list {
		printlnFn(fmt.Sprintf("%s: %s = %s", rec.Timestamp, rec.Parameter, rec.Value))
	}
	return nil
}

// AddHealth records a single measurement, e.g. "tension 120".
func (a *App) AddHealth(ctx context.Context) error {
	parameter, err := getSimpleText(a.reader, "Parameter (e.g. tension, glucosa)", os.Stdout)
	if err != nil {
		return err
	}

	value, err := getSimpleText(a.reader, "Value", os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.health.Save(ctx, parameter, value); err != nil {
		a.reportErr(ctx, err)
		return err
	}

	printlnFn("Measurement saved.")
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"
)

// Profile shows the logged-in user's profile and optionally edits the
// mutable fields (age and city).
func (a *App) Profile(ctx context.Context) error {
	cur, ok := a.store.Current()
	if !ok {
		printlnFn("Please log in first.")
		return nil
	}

	printlnFn(fmt.Sprintf("Username: %s\nAge: %d\nCity: %s", cur.Username, cur.Age, cur.City))

	answer, err := getSimpleText(a.reader, "Edit profile? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" {
		return nil
	}

	age, err := getNumber(a.reader, "New age", os.Stdout)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}

	city, err := getSimpleText(a.reader, "New city", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.UpdateProfile(ctx, age, city); err != nil {
		a.reportErr(ctx, err)
		return err
	}

	printlnFn("Profile updated.")
	return nil
}

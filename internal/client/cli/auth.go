package cli

import (
	"context"
	"errors"
	"os"

	"github.com/amparo-app/amparo-cli/internal/common"
)

// getSimpleText, getPIN and getNumber are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPIN = GetPIN
var getNumber = GetNumber

// Register prompts for the new account's details and creates it via the
// AuthService. Registration does not log the user in.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	pin, err := getPIN(os.Stdout)
	if err != nil {
		return err
	}

	age, err := getNumber(a.reader, "Enter age", os.Stdout)
	if err != nil {
		a.reportErr(ctx, err)
		return err
	}

	city, err := getSimpleText(a.reader, "Enter city", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.Register(ctx, userName, pin, age, city); err != nil {
		a.reportErr(ctx, err)
		return err
	}

	printlnFn("Account created. You can log in now.")
	return nil
}

// Login prompts for credentials, authenticates, and runs a reminder refresh
// so local notifications match the server from the first moment.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	pin, err := getPIN(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.Login(ctx, userName, pin); err != nil {
		// A 401 here means wrong credentials, not an expired session.
		if errors.Is(err, common.ErrorUnauthorized) {
			printlnFn("Wrong username or PIN.")
			return err
		}
		a.reportErr(ctx, err)
		return err
	}

	printlnFn("Welcome,", userName)

	if _, err := a.reminders.Refresh(ctx); err != nil {
		a.reportErr(ctx, err)
	}
	return nil
}

// Logout clears the stored session and the chat history.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.reportErr(ctx, err)
		return err
	}
	a.chat.Reset()
	printlnFn("Logged out.")
	return nil
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	Reminders(ctx context.Context) error
	AddReminder(ctx context.Context) error
	EditReminder(ctx context.Context) error
	DeleteReminder(ctx context.Context) error
	Health(ctx context.Context) error
	AddHealth(ctx context.Context) error
	Emergency(ctx context.Context) error
	Emergencies(ctx context.Context) error
	Chat(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the Amparo CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - reminders      — list reminders and re-arm local notifications
//	  - addrem         — create a reminder
//	  - editrem        — edit a reminder
//	  - delrem         — delete a reminder
//	  - health         — list health measurements
//	  - addhealth      — record a measurement
//	  - sos            — raise an emergency
//	  - emergencies    — list past emergencies
//	  - chat           — talk to the assistant
//	  - profile        — show and edit the profile
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("amparo %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (r)eminders, addrem, editrem, delrem, health, addhealth, sos, emergencies, chat, profile, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "r", "reminders":
			_ = a.Reminders(ctx)

		case "addrem":
			_ = a.AddReminder(ctx)

		case "editrem":
			_ = a.EditReminder(ctx)

		case "delrem":
			_ = a.DeleteReminder(ctx)

		case "health":
			_ = a.Health(ctx)

		case "addhealth":
			_ = a.AddHealth(ctx)

		case "sos":
			_ = a.Emergency(ctx)

		case "emergencies":
			_ = a.Emergencies(ctx)

		case "chat":
			_ = a.Chat(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Hasta pronto!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

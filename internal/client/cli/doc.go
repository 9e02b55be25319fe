// Package cli provides the interactive Amparo command-line client.
//
// It wires configuration, local storage, the REST API client, and an
// interactive REPL aimed at elderly users' caretakers: log in once, then
// manage reminders, health measurements, emergencies, and chat with the
// assistant. Reminders are mirrored into a local notification queue so the
// terminal announces them when they come due.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

// Package cli provides the interactive dysh command-line client.
//
// It wires the application services into a REPL: sign in with an Apple or
// Google identity token, browse and like recipes, manage cuisine preferences,
// generate recipes from ingredients and inspect session metrics.
//
// Commands that need a session report "sign in again" when the session is
// missing or has expired; other failures print the cause and leave the REPL
// running.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

// Package cli provides the interactive Witter command-line client.
//
// It wires configuration, local session storage, the API client and an
// interactive REPL. Typical flow: restore the saved session, then execute
// user commands against the backend.
//
// Key features:
//   - Register / Login / Logout, with the session surviving restarts
//   - Feed and single-weet views with reweet, favorite and tab toggles
//   - Posting, editing and deleting weets
//   - Profile pages, following, and profile editing
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

// Package cli provides the interactive ScholarHub command-line client.
//
// It wires configuration, the session store, the API services and an
// interactive REPL. Typical flow: restore the stored session, re-validate it
// against the server, then execute user commands.
//
// Key features:
//   - Register / Login / Logout / whoami
//   - Browse documents, list their pages, preview and download them
//   - Document management and user administration for admins
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

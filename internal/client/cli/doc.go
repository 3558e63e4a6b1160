// Package cli provides the interactive console client of the inventory
// manager.
//
// It wires configuration, the local cache and settings stores, the remote
// client and the sync coordinator, then runs a REPL. Every coordinator call
// is executed off the REPL goroutine through dispatch and its result is
// rendered on the dispatch loop. A background watcher keeps an
// online/offline badge in the prompt.
//
// Commands:
//   - login / logout / whoami / check / signup / init
//   - products / add / update / delete / stats
//   - users / adduser / passwd / role / deluser (admin only)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

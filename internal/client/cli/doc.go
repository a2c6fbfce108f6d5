// Package cli provides the interactive goal bingo command-line client.
//
// It wires configuration, the device database, the board service client and
// an interactive REPL. Boards live on the device until the user signs in;
// signing in merges the device boards into the account (see boardsync) and
// from then on changes are saved to the server.
//
// Key features:
//   - Create, select, rename and delete boards
//   - Set goals and mark cells achieved, with bingo progress and hints
//   - Register / Login / Logout, with the session remembered between runs
//   - Background connectivity watcher (online / offline mode)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

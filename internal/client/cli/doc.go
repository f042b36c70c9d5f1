// Package cli provides the interactive task manager command-line client.
//
// It wires configuration, a Backend (local stores or the gRPC server) and a
// REPL. Typical flow: restore the saved session if there is one, log in or
// register, then manage tasks.
//
// Key features:
//   - Register / Login / Logout, with the sample tasks seeded on login
//   - List (with status, priority, category and text filters), add, edit,
//     toggle and delete tasks
//   - Stats, profile with achievements, categories
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

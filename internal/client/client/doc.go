// Package client contains the network client of the task manager CLI.
//
// GRPCClient talks to the task manager server (see internal/server/grpc)
// and satisfies services.Backend, so the CLI can use it in place of the
// local stores. Every call carries the configured namespace in the
// x-namespace metadata header.
//
// # Error Handling
//
// Domain errors come back as the same sentinels the stores return
// (auth.ErrInvalidCredentials, tasks.ErrEmptyTitle, ...), so errors.Is works
// across the wire. Transport conditions are exposed as ErrUnavailable and
// ErrUnauthorized.
package client

// Package client talks to the goal bingo server.
//
// GRPCClient manages the connection, attaches the access token to every call,
// refreshes an expired token once and retries, and maps gRPC status codes to
// sentinel errors (ErrUnavailable, ErrUnauthorized and the common package
// errors). RemoteAdapter exposes the signed-in user's boards as a
// storage.Adapter.
package client

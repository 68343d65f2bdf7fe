// Package client talks to the GZAP relay.
//
// # Overview
//
// The package provides:
//  1. The Client interface: the REST contract the console depends on
//     (login, identity, connection status, QR pairing, message log,
//     companies and users).
//  2. HTTPClient, the net/http implementation. It reads the bearer credential
//     from a session.Context on every request, tags requests with an
//     X-Request-ID, and rate-limits itself so a misbehaving poller cannot
//     flood the relay.
//  3. Local state bootstrap (InitDatabase, RunMigrations): an SQLite file
//     migrated with embedded goose migrations.
//
// # Error Handling
//
// Every failure comes back as *APIError carrying the relay's {code, message}.
// Transport failures carry a generic user-facing message and match
// ErrUnavailable; HTTP 401 matches ErrUnauthorized.
package client

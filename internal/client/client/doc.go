// Package client is the Remote Client of the inventory app.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): sign-in,
//     sign-up and session checks, product and user CRUD, and remote default
//     data initialization.
//  2. A concrete REST/JSON implementation (see HTTPClient) that performs one
//     HTTP request per call, attaches a bearer token, and decodes the JSON
//     envelope the service answers with.
//
// # Tokens
//
// Bootstrap calls (sign-in, sign-up, init) always send the static service key.
// Every other call sends the live session token taken from a TokenSource and
// falls back to the service key when there is no session.
//
// # Error Handling
//
// Nothing is retried. Failures are returned as errors that callers can match
// with errors.Is against the common taxonomy:
//   - ErrUnavailable: transport failure (is common.ErrNetwork)
//   - ErrBadResponse: undecodable body (is common.ErrNetwork)
//   - *APIError: non-2xx status carrying the server message (is common.ErrNetwork,
//     and common.ErrUnauthorized for 401/403, common.ErrNotFound for 404)
//
// HTTPClient is safe for concurrent use. All operations honor context
// cancellation and the configured request timeout.
package client

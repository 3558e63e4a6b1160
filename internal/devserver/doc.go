// Package devserver is a self-contained stand-in for the inventory remote
// service. It serves the REST/JSON endpoints the client consumes (auth,
// products, users, /init and /health) from in-memory state, signs HS256
// access tokens and enforces admin-only writes.
package devserver

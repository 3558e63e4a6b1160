// Package shared holds what both sides of the inventory API agree on: the
// JSON wire types exchanged with the remote service, its route paths, and a
// few small helpers for random strings and secure memory wiping.
package shared

// Package common defines the error taxonomy shared by every layer of the
// inventory data layer. Layers wrap these sentinels with fmt.Errorf("...: %w")
// and callers match them with errors.Is.
package common

import "errors"

var (
	// ErrValidation marks bad caller input (unparseable price, empty name, ...).
	ErrValidation = errors.New("validation error")

	// ErrNetwork marks remote failures: unreachable service, non-2xx status,
	// undecodable response.
	ErrNetwork = errors.New("network error")

	// ErrStorage marks local store I/O failures.
	ErrStorage = errors.New("storage error")

	// ErrNotFound marks a referenced product or user that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized marks rejected credentials or tokens.
	ErrUnauthorized = errors.New("unauthorized")
)

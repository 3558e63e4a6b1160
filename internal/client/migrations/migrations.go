// Package migrations embeds the goose migrations of the local cache file.
//
// The first migration uses CREATE TABLE IF NOT EXISTS with the column names of
// the earlier cache format, so an existing cache file is adopted in place; later
// migrations are additive.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS

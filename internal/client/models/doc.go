// Package models defines the inventory domain types shared by the data layer:
// products, users and roles, the session snapshot, sync bookkeeping, and the
// structured patch values used for partial updates.
package models

// Package products provides the client-side persistence layer for cached products.
//
// # Overview
//
// The package defines a Repository interface for CRUD and bulk operations on
// models.Product. A SQLite-backed implementation (SQLiteRepository) persists data
// using a dbx.DBTX (either *sql.DB or *sql.Tx), so the same repository code runs
// inside and outside transactions.
//
// # Errors
//
// Driver failures are wrapped with common.ErrStorage; a missing row yields
// common.ErrNotFound.
//
// Typical Usage
//
//	repo := products.NewSQLiteRepository(db)
//	_ = repo.Insert(ctx, &p)
//	list, _ := repo.GetAll(ctx) // ordered by name
//	one, _ := repo.GetByID(ctx, id)
//	_ = repo.DeleteByID(ctx, id)
package products

// Package store provides SQLite-backed storage for the book inventory.
//
// The inventory is a single table, book_list, holding one row per book:
//   - ID: INTEGER PRIMARY KEY, assigned by SQLite on insert
//   - Title, Author: free-form TEXT
//   - Quantity: INTEGER, not constrained
//
// # Statements
//
// Every operation is one parameterized statement in autocommit mode. Update
// and Delete are conditional on the id and report book.ErrNotFound when no
// row was affected, so there is no window between a lookup and the write.
// The only explicit transaction is the seed insert in Initialize.
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - one open connection, held for the life of the Store
package store

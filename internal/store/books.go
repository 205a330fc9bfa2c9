package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/ebookstore/internal/book"
)

const selectBookFields = `SELECT ID, Title, Author, Quantity FROM book_list`

// Initialize seeds the inventory with book.Seed when the table is empty and
// returns the number of rows inserted. A non-empty table is left untouched.
//
// The count and the inserts run in one transaction so a crash mid-seed
// leaves the table empty rather than partially seeded.
func (s *Store) Initialize(ctx context.Context) (int, error) {
	if err := applySchema(s.db); err != nil {
		return 0, fmt.Errorf("initialize: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("initialize: begin: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM book_list`).Scan(&count); err != nil {
		return 0, fmt.Errorf("initialize: count: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO book_list (Title, Author, Quantity) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("initialize: prepare: %w", err)
	}
	defer stmt.Close()

	seed := book.Seed()
	for _, b := range seed {
		if _, err := stmt.ExecContext(ctx, b.Title, b.Author, b.Quantity); err != nil {
			return 0, fmt.Errorf("initialize: insert %q: %w", b.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("initialize: commit: %w", err)
	}
	return len(seed), nil
}

// Add inserts a new book and returns it with its assigned id.
// No duplicate detection is performed.
func (s *Store) Add(ctx context.Context, title, author string, quantity int) (book.Book, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO book_list (Title, Author, Quantity) VALUES (?, ?, ?)`,
		title, author, quantity,
	)
	if err != nil {
		return book.Book{}, fmt.Errorf("add book: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return book.Book{}, fmt.Errorf("add book: last insert id: %w", err)
	}

	return book.Book{ID: id, Title: title, Author: author, Quantity: quantity}, nil
}

// Get returns the book with the given id, or book.ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (book.Book, error) {
	var b book.Book
	err := s.db.QueryRowContext(ctx, selectBookFields+` WHERE ID = ?`, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return book.Book{}, book.ErrNotFound
	}
	if err != nil {
		return book.Book{}, fmt.Errorf("get book %d: %w", id, err)
	}
	return b, nil
}

// Update overwrites title, author and quantity of the book with b.ID.
// Returns book.ErrNotFound, and writes nothing, when no such row exists.
func (s *Store) Update(ctx context.Context, b book.Book) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE book_list SET Title = ?, Author = ?, Quantity = ? WHERE ID = ?`,
		b.Title, b.Author, b.Quantity, b.ID,
	)
	if err != nil {
		return fmt.Errorf("update book %d: %w", b.ID, err)
	}
	return requireAffected(res, b.ID)
}

// Delete removes the book with the given id.
// Returns book.ErrNotFound when no such row exists.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM book_list WHERE ID = ?`, id)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	return requireAffected(res, id)
}

// Search returns the rows whose id matches the raw text id. The text is bound
// as-is; SQLite's integer affinity on ID decides whether it matches. An
// unmatched or non-numeric id yields an empty slice.
func (s *Store) Search(ctx context.Context, id string) ([]book.Book, error) {
	rows, err := s.db.QueryContext(ctx, selectBookFields+` WHERE ID = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("search book %q: %w", id, err)
	}
	defer rows.Close()

	books, err := scanBooks(rows)
	if err != nil {
		return nil, fmt.Errorf("search book %q: %w", id, err)
	}
	return books, nil
}

// List returns every book in id order.
func (s *Store) List(ctx context.Context) ([]book.Book, error) {
	rows, err := s.db.QueryContext(ctx, selectBookFields+` ORDER BY ID ASC`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books, err := scanBooks(rows)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Count returns the number of books in the inventory.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM book_list`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}

func scanBooks(rows *sql.Rows) ([]book.Book, error) {
	books := []book.Book{}
	for rows.Next() {
		var b book.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Quantity); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for book %d: %w", id, err)
	}
	if n == 0 {
		return book.ErrNotFound
	}
	return nil
}

// Package menu implements the interactive inventory loop: print the menu,
// read a choice, run the matching store operation, print the result, repeat
// until the operator picks 0 or input ends.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/ebookstore/internal/book"
	"github.com/roach88/ebookstore/internal/render"
)

// Inventory is the storage the menu drives. *store.Store satisfies it.
type Inventory interface {
	Add(ctx context.Context, title, author string, quantity int) (book.Book, error)
	Get(ctx context.Context, id int64) (book.Book, error)
	Update(ctx context.Context, b book.Book) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, id string) ([]book.Book, error)
	List(ctx context.Context) ([]book.Book, error)
}

// Text shown to the operator.
const (
	menuText = `
Menu:
1. Add a book
2. Update a book
3. Delete a book
4. Search for a book
5. View all books
0. Exit
`
	promptChoice = "Please select an option by entering the option number: "

	msgAdded         = "Book has been added successfully!"
	msgUpdated       = "Book has been updated successfully!"
	msgDeleted       = "Book has been deleted successfully!"
	msgIDNotFound    = "Book with the given ID was not found."
	msgSearchMiss    = render.SearchMiss
	msgSearchResults = "Search results:"
	msgListHeader    = "\nList of Books:"
	msgListEmpty     = render.EmptyInventory
	msgUpdateIntro   = "Please enter the updated information:"
	msgInvalidChoice = "Invalid choice. Please make sure to use the number correlating to the option."
	msgNotANumber    = "Please enter a whole number."
)

// Menu is a blocking read-eval-print loop over an Inventory.
// It is not safe for concurrent use.
type Menu struct {
	inv    Inventory
	in     *bufio.Reader
	out    io.Writer
	logger *slog.Logger
}

// Option configures a Menu.
type Option func(*Menu)

// WithLogger sets the logger used for diagnostics. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Menu) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a Menu reading operator input from in and writing to out.
func New(inv Inventory, in io.Reader, out io.Writer, opts ...Option) *Menu {
	m := &Menu{
		inv:    inv,
		in:     bufio.NewReader(in),
		out:    out,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run loops until the operator chooses 0 or input is exhausted, both of
// which return nil. Store failures and context cancellation end the loop
// with an error.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.print(menuText)
		choice, err := m.readChoice()
		if err != nil {
			return m.finish(err)
		}
		m.logger.Debug("menu choice", "choice", choice)

		if choice == "0" {
			return nil
		}
		if err := m.dispatch(ctx, choice); err != nil {
			return m.finish(err)
		}
	}
}

func (m *Menu) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		return m.addBook(ctx)
	case "2":
		return m.updateBook(ctx)
	case "3":
		return m.deleteBook(ctx)
	case "4":
		return m.searchBook(ctx)
	case "5":
		return m.viewBooks(ctx)
	default:
		m.println(msgInvalidChoice)
		return nil
	}
}

// finish maps end of input to a normal exit.
func (m *Menu) finish(err error) error {
	if errors.Is(err, errEndOfInput) {
		m.logger.Debug("input closed, leaving menu")
		m.println("")
		return nil
	}
	return err
}

func (m *Menu) addBook(ctx context.Context) error {
	title, err := m.readLine("Please enter the book title: ")
	if err != nil {
		return err
	}
	author, err := m.readLine("Please enter the author of the book: ")
	if err != nil {
		return err
	}
	quantity, err := m.readInt("Please enter the quantity of the book: ")
	if err != nil {
		return err
	}

	b, err := m.inv.Add(ctx, title, author, quantity)
	if err != nil {
		return err
	}
	m.logger.Debug("book added", "id", b.ID)
	m.println(msgAdded)
	return nil
}

func (m *Menu) updateBook(ctx context.Context) error {
	id, err := m.readID("Please enter the book ID you would like to update: ")
	if err != nil {
		return err
	}

	// Only ask for new values once the book is known to exist.
	if _, err := m.inv.Get(ctx, id); err != nil {
		if errors.Is(err, book.ErrNotFound) {
			m.println(msgIDNotFound)
			return nil
		}
		return err
	}

	m.println(msgUpdateIntro)
	b := book.Book{ID: id}
	if b.Title, err = m.readLine("Please enter the updated title: "); err != nil {
		return err
	}
	if b.Author, err = m.readLine("Please enter the updated author: "); err != nil {
		return err
	}
	if b.Quantity, err = m.readInt("Please enter the updated quantity: "); err != nil {
		return err
	}

	// Update is conditional on the id, so a row removed since Get is still
	// reported rather than silently skipped.
	if err := m.inv.Update(ctx, b); err != nil {
		if errors.Is(err, book.ErrNotFound) {
			m.println(msgIDNotFound)
			return nil
		}
		return err
	}
	m.logger.Debug("book updated", "id", id)
	m.println(msgUpdated)
	return nil
}

func (m *Menu) deleteBook(ctx context.Context) error {
	id, err := m.readID("Please enter the ID of the book you would like to delete: ")
	if err != nil {
		return err
	}

	if err := m.inv.Delete(ctx, id); err != nil {
		if errors.Is(err, book.ErrNotFound) {
			m.println(msgIDNotFound)
			return nil
		}
		return err
	}
	m.logger.Debug("book deleted", "id", id)
	m.println(msgDeleted)
	return nil
}

func (m *Menu) searchBook(ctx context.Context) error {
	line, err := m.readLine("Please enter the book ID you would like to look up: ")
	if err != nil {
		return err
	}

	// The id stays text; the store decides whether it matches.
	books, err := m.inv.Search(ctx, strings.TrimSpace(line))
	if err != nil {
		return err
	}
	if len(books) == 0 {
		m.println(msgSearchMiss)
		return nil
	}

	m.println(msgSearchResults)
	for _, b := range books {
		if err := render.Detail(m.out, b); err != nil {
			return fmt.Errorf("render search result: %w", err)
		}
	}
	return nil
}

func (m *Menu) viewBooks(ctx context.Context) error {
	books, err := m.inv.List(ctx)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		m.println(msgListEmpty)
		return nil
	}

	m.println(msgListHeader)
	if err := render.Table(m.out, books); err != nil {
		return fmt.Errorf("render book list: %w", err)
	}
	return nil
}

func (m *Menu) print(s string) {
	fmt.Fprint(m.out, s)
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

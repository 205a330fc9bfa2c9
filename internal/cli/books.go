package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/ebookstore/internal/book"
	"github.com/roach88/ebookstore/internal/render"
	"github.com/roach88/ebookstore/internal/store"
)

// BookOptions holds the field flags shared by add and update.
type BookOptions struct {
	*RootOptions
	Title    string
	Author   string
	Quantity int
}

var bookFieldFlags = []string{"title", "author", "quantity"}

func (o *BookOptions) bindFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Title, "title", "", "book title (required)")
	cmd.Flags().StringVar(&o.Author, "author", "", "book author (required)")
	cmd.Flags().IntVar(&o.Quantity, "quantity", 0, "copies in stock (required)")
	for _, name := range bookFieldFlags {
		_ = cmd.MarkFlagRequired(name)
	}
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return o.fail(cmd, requireFlags(cmd, bookFieldFlags...))
	}
}

// requireFlags reports unset flags as a usage error. It runs before cobra's
// own required-flag check so the error carries ExitUsage.
func requireFlags(cmd *cobra.Command, names ...string) error {
	var missing []string
	for _, name := range names {
		if !cmd.Flags().Changed(name) {
			missing = append(missing, fmt.Sprintf("%q", name))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return NewExitError(ExitUsage, fmt.Sprintf("required flag(s) %s not set", strings.Join(missing, ", ")))
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the inventory file and seed it if empty",
		Long: `Create the inventory file if it doesn't exist and insert the five
starter books when the inventory is empty. Safe to run repeatedly.

Example:
  ebookstore init --db ./shop.db`,
		Args:          exactArgs(rootOpts, 0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(rootOpts, cmd, func(ctx context.Context, st *store.Store, out *OutputFormatter) error {
				n, err := st.Count(ctx)
				if err != nil {
					return WrapExitError(ExitFailure, "failed to count books", err)
				}
				return out.Message(fmt.Sprintf("Inventory %s holds %d books.", rootOpts.cfg.DBPath, n))
			})
		},
	}
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List every book",
		Args:          exactArgs(rootOpts, 0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(rootOpts, cmd, func(ctx context.Context, st *store.Store, out *OutputFormatter) error {
				books, err := st.List(ctx)
				if err != nil {
					return WrapExitError(ExitFailure, "failed to list books", err)
				}
				return out.Books(books)
			})
		},
	}
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <id>",
		Short: "Show the book with the given id",
		Long: `Show the book with the given id. Exits with status 3 when no book
matches.

Example:
  ebookstore search 4`,
		Args:          exactArgs(rootOpts, 1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(rootOpts, cmd, func(ctx context.Context, st *store.Store, out *OutputFormatter) error {
				books, err := st.Search(ctx, args[0])
				if err != nil {
					return WrapExitError(ExitFailure, "failed to search books", err)
				}
				if len(books) == 0 {
					return NewExitError(ExitNotFound, render.SearchMiss)
				}
				if out.Format == "json" {
					return out.Books(books)
				}
				for _, b := range books {
					if err := out.Book("", b); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BookOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Long: `Add a book. Duplicates are allowed; every add gets a new id.

Example:
  ebookstore add --title Dune --author "Frank Herbert" --quantity 10`,
		Args:          exactArgs(rootOpts, 0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(rootOpts, cmd, func(ctx context.Context, st *store.Store, out *OutputFormatter) error {
				b, err := st.Add(ctx, opts.Title, opts.Author, opts.Quantity)
				if err != nil {
					return WrapExitError(ExitFailure, "failed to add book", err)
				}
				return out.Book("Book has been added successfully!", b)
			})
		},
	}
	opts.bindFlags(cmd)

	return cmd
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BookOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Overwrite a book's title, author and quantity",
		Long: `Overwrite a book's title, author and quantity. Exits with status 3
when no book has the id.

Example:
  ebookstore update 2 --title "Chamber of Secrets" --author "J.K. Rowling" --quantity 8`,
		Args:          exactArgs(rootOpts, 1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return rootOpts.fail(cmd, err)
			}
			return withStore(rootOpts, cmd, func(ctx context.Context, st *store.Store, out *OutputFormatter) error {
				b := book.Book{ID: id, Title: opts.Title, Author: opts.Author, Quantity: opts.Quantity}
				if err := st.Update(ctx, b); err != nil {
					return notFoundOr(err, id, "failed to update book")
				}
				return out.Book("Book has been updated successfully!", b)
			})
		},
	}
	opts.bindFlags(cmd)

	return cmd
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a book",
		Args:          exactArgs(rootOpts, 1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return rootOpts.fail(cmd, err)
			}
			return withStore(rootOpts, cmd, func(ctx context.Context, st *store.Store, out *OutputFormatter) error {
				if err := st.Delete(ctx, id); err != nil {
					return notFoundOr(err, id, "failed to delete book")
				}
				return out.Message("Book has been deleted successfully!")
			})
		},
	}
}

// withStore opens the inventory for the duration of fn. Errors are reported
// through fail so JSON callers always get a response body.
func withStore(opts *RootOptions, cmd *cobra.Command, fn func(context.Context, *store.Store, *OutputFormatter) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := opts.openStore(ctx)
	if err != nil {
		return opts.fail(cmd, err)
	}
	defer opts.closeStore(st)

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return opts.fail(cmd, fn(ctx, st, out))
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, WrapExitError(ExitUsage, fmt.Sprintf("invalid book id %q", arg), err)
	}
	return id, nil
}

func notFoundOr(err error, id int64, message string) error {
	if errors.Is(err, book.ErrNotFound) {
		return WrapExitError(ExitNotFound, fmt.Sprintf("book %d", id), err)
	}
	return WrapExitError(ExitFailure, message, err)
}

// exactArgs is cobra.ExactArgs with a usage exit code.
func exactArgs(opts *RootOptions, n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return opts.fail(cmd, WrapExitError(ExitUsage, "invalid arguments", err))
		}
		return nil
	}
}

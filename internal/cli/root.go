// Package cli wires configuration, logging and the store into the ebookstore
// command tree.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/ebookstore/internal/config"
	"github.com/roach88/ebookstore/internal/menu"
	"github.com/roach88/ebookstore/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	DBPath     string
	Verbose    bool
	Format     string // "json" | "text"

	// SessionIDs overrides the session id source (for testing).
	// If nil, defaults to UUIDv7Generator.
	SessionIDs SessionIDGenerator

	cfg    config.Config
	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. Run without a subcommand it
// starts the interactive menu.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ebookstore",
		Short: "Bookstore inventory manager",
		Long: `Manage a bookstore's inventory of titles, authors and quantities.

With no subcommand, ebookstore opens an interactive menu for adding,
updating, deleting, searching and listing books. The inventory lives in a
local SQLite file (ebookstore.db by default) and is seeded with five books
the first time it is created.

Examples:
  ebookstore
  ebookstore --db /var/lib/shop/books.db
  ebookstore list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(opts, cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", store.DefaultPath, "path to SQLite inventory file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "subcommand output format (json|text)")

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return opts.fail(cmd, WrapExitError(ExitUsage, "invalid flags", err))
	})

	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))

	return cmd
}

// resolve loads configuration, applies explicitly set flags on top of it and
// builds the logger.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	if !isValidFormat(o.Format) {
		return NewExitError(ExitUsage, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return o.fail(cmd, WrapExitError(ExitUsage, "failed to load config", err))
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = o.DBPath
	}
	if flags.Changed("verbose") {
		cfg.Verbose = o.Verbose
	}
	if err := cfg.Validate(); err != nil {
		return o.fail(cmd, WrapExitError(ExitUsage, "invalid config", err))
	}

	gen := o.SessionIDs
	if gen == nil {
		gen = UUIDv7Generator{}
	}

	o.cfg = cfg
	o.logger = newLogger(cmd.ErrOrStderr(), cfg, gen.Generate())
	o.logger.Debug("config resolved", "db", cfg.DBPath, "log_format", cfg.LogFormat)
	return nil
}

// openStore opens and seeds the configured inventory. The caller closes it.
func (o *RootOptions) openStore(ctx context.Context) (*store.Store, error) {
	st, err := store.Open(o.cfg.DBPath)
	if err != nil {
		o.logger.Error("failed to open inventory", "path", o.cfg.DBPath, "error", err)
		return nil, WrapExitError(ExitFailure, "failed to open inventory", err)
	}

	seeded, err := st.Initialize(ctx)
	if err != nil {
		st.Close()
		o.logger.Error("failed to initialize inventory", "path", o.cfg.DBPath, "error", err)
		return nil, WrapExitError(ExitFailure, "failed to initialize inventory", err)
	}
	if seeded > 0 {
		o.logger.Info("seeded inventory", "path", o.cfg.DBPath, "books", seeded)
	}
	return st, nil
}

func (o *RootOptions) closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		o.logger.Error("error closing inventory", "error", err)
	}
}

// fail reports err on stdout as a JSON error response when a subcommand runs
// with --format json, and returns err unchanged. The menu and text mode leave
// reporting to the caller of Execute.
func (o *RootOptions) fail(cmd *cobra.Command, err error) error {
	if err == nil || o.Format != "json" || !cmd.HasParent() {
		return err
	}
	out := &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
	if werr := out.Error(err); werr != nil {
		o.debug("failed to write error response", "error", werr)
	}
	return err
}

// debug logs through the resolved logger, if any. Flag and argument errors
// happen before the logger exists.
func (o *RootOptions) debug(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Debug(msg, args...)
	}
}

func runMenu(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := opts.openStore(ctx)
	if err != nil {
		return err
	}
	defer opts.closeStore(st)

	m := menu.New(st, cmd.InOrStdin(), cmd.OutOrStdout(), menu.WithLogger(opts.logger))
	if err := m.Run(ctx); err != nil {
		opts.logger.Error("menu stopped", "error", err)
		return WrapExitError(ExitFailure, "inventory operation failed", err)
	}
	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

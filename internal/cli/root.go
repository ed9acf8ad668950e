// Package cli is the command-line surface over the patient store: the
// offline triage desk a clinic runs from a terminal. It is a caller of
// the store, classifier and exporter, and owns all user-visible
// presentation including the mapping from error kinds to recovery
// guidance.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/triagedesk/triagedesk/internal/config"
	"github.com/triagedesk/triagedesk/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DBPath    string
	ExportDir string
	Verbose   bool
	Format    string // "json" | "text"

	log zerolog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the triagedesk CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cfg, err := config.Load()
	if err != nil {
		// Fall back to bare defaults; flags can still override.
		cfg = &config.Config{DBPath: "triagedesk.db", LogLevel: "warn", ExportDir: "."}
	}

	cmd := &cobra.Command{
		Use:   "triagedesk",
		Short: "Offline patient-record and triage-queue desk",
		Long: `triagedesk keeps a local patient queue: intake, triage levels,
status tracking with an audit trail, shift-handover notes, and
portable CSV/JSON exports. Everything lives in one SQLite file;
no network is involved.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			opts.log = newLogger(cmd, cfg.LogLevel, opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", cfg.DBPath, "path to the patient database file")
	cmd.PersistentFlags().StringVar(&opts.ExportDir, "export-dir", cfg.ExportDir, "directory exports are written into")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewHandoverCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewClearCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))

	return cmd
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

// newLogger builds the zerolog console logger for a command run.
// Verbose forces debug regardless of the configured level.
func newLogger(cmd *cobra.Command, level string, verbose bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// openStore opens the patient database named by the options, creating
// the parent directory on first use.
func openStore(opts *RootOptions) (*store.Store, error) {
	if dir := filepath.Dir(opts.DBPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	return store.Open(opts.DBPath, store.WithLogger(opts.log))
}

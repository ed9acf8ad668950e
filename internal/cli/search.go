package cli

import (
	"github.com/spf13/cobra"
)

// NewSearchCommand creates the search command: case-insensitive
// substring match over name, condition and notes.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "search <term>",
		Short:         "Search patients by name, condition or notes",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			s, err := openStore(rootOpts)
			if err != nil {
				return &ExitError{Code: ExitCommandError, Message: "cannot open patient database", Err: err}
			}
			defer s.Close()

			records, err := s.Search(cmd.Context(), args[0])
			if err != nil {
				return formatter.Failure(err)
			}

			if rootOpts.Format == "json" {
				return formatter.Success(records)
			}
			return formatter.Success(renderTable(records))
		},
	}

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command: remove one record and
// its owned history.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "delete <id>",
		Short:         "Remove a patient record and its history",
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

			if err := s.Delete(cmd.Context(), args[0]); err != nil {
				return formatter.Failure(err)
			}

			if rootOpts.Format == "json" {
				return formatter.Success(map[string]string{"id": args[0]})
			}
			return formatter.Success(fmt.Sprintf("deleted %s", args[0]))
		},
	}

	return cmd
}

// NewClearCommand creates the clear command: the administrative reset.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:           "clear",
		Short:         "Remove every patient record",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			if !yes {
				return &ExitError{Code: ExitCommandError, Message: "refusing to clear the queue without --yes"}
			}

			s, err := openStore(rootOpts)
			if err != nil {
				return &ExitError{Code: ExitCommandError, Message: "cannot open patient database", Err: err}
			}
			defer s.Close()

			if err := s.Clear(cmd.Context()); err != nil {
				return formatter.Failure(err)
			}

			if rootOpts.Format == "json" {
				return formatter.Success(map[string]bool{"cleared": true})
			}
			return formatter.Success("queue cleared")
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm clearing every record")

	return cmd
}

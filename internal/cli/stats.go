package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/triagedesk/triagedesk/internal/export"
)

// NewStatsCommand creates the stats command: queue counts by triage level.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stats",
		Short:         "Show queue counts by triage level",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			s, err := openStore(rootOpts)
			if err != nil {
				return &ExitError{Code: ExitCommandError, Message: "cannot open patient database", Err: err}
			}
			defer s.Close()

			st, err := export.New(s).ExportStats(cmd.Context())
			if err != nil {
				return formatter.Failure(err)
			}

			if rootOpts.Format == "json" {
				return formatter.Success(st)
			}
			return formatter.Success(fmt.Sprintf("total %d: %d critical, %d urgent, %d stable",
				st.Total, st.CriticalCount, st.UrgentCount, st.StableCount))
		},
	}

	return cmd
}

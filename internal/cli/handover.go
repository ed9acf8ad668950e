package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/triagedesk/triagedesk/internal/record"
)

// NewHandoverCommand creates the handover command: append a structured
// shift-handover note to a patient record.
func NewHandoverCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		staff        string
		shift        string
		summary      string
		critical     []string
		observations string
		actions      []string
		priority     string
	)

	cmd := &cobra.Command{
		Use:           "handover <id>",
		Short:         "Add a shift-handover note to a patient record",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			n := record.NewHandoverNote{
				StaffName:       staff,
				ShiftType:       record.ShiftType(shift),
				Summary:         summary,
				CriticalUpdates: critical,
				KeyObservations: observations,
				ActionItems:     actions,
				Priority:        record.Priority(priority),
			}
			if err := n.Validate(); err != nil {
				return formatter.Failure(err)
			}

			s, err := openStore(rootOpts)
			if err != nil {
				return &ExitError{Code: ExitCommandError, Message: "cannot open patient database", Err: err}
			}
			defer s.Close()

			if err := s.AddHandoverNote(cmd.Context(), args[0], n); err != nil {
				return formatter.Failure(err)
			}

			if rootOpts.Format == "json" {
				return formatter.Success(map[string]string{"id": args[0]})
			}
			return formatter.Success(fmt.Sprintf("handover note added to %s", args[0]))
		},
	}

	cmd.Flags().StringVar(&staff, "staff", "", "staff member writing the note (required)")
	cmd.Flags().StringVar(&shift, "shift", string(record.ShiftOutgoing), "shift side (outgoing|incoming)")
	cmd.Flags().StringVar(&summary, "summary", "", "handover summary")
	cmd.Flags().StringSliceVar(&critical, "critical", nil, "critical update (repeatable)")
	cmd.Flags().StringVar(&observations, "observations", "", "key observations")
	cmd.Flags().StringSliceVar(&actions, "action", nil, "action item (repeatable)")
	cmd.Flags().StringVar(&priority, "priority", string(record.PriorityMedium), "priority (high|medium|low)")
	cmd.MarkFlagRequired("staff")

	return cmd
}

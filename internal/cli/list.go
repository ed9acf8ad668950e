package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/triagedesk/triagedesk/internal/record"
	"github.com/triagedesk/triagedesk/internal/store"
)

// NewListCommand creates the list command: the queue, newest first.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		byTriage string
		byStatus string
	)

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List the patient queue, most recent first",
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

			records, err := fetchList(cmd.Context(), s, byTriage, byStatus)
			if err != nil {
				return formatter.Failure(err)
			}

			if rootOpts.Format == "json" {
				return formatter.Success(records)
			}
			return formatter.Success(renderTable(records))
		},
	}

	cmd.Flags().StringVar(&byTriage, "triage", "", "only this triage level (Critical|Urgent|Stable)")
	cmd.Flags().StringVar(&byStatus, "status", "", "only this workflow status")

	return cmd
}

func fetchList(ctx context.Context, s *store.Store, byTriage, byStatus string) ([]record.PatientRecord, error) {
	switch {
	case byTriage != "":
		return s.FindByTriageLevel(ctx, record.TriageLevel(byTriage))
	case byStatus != "":
		return s.FindByStatus(ctx, record.Status(byStatus))
	default:
		return s.GetAll(ctx)
	}
}

// renderTable lays out records for a terminal. Only the queue-relevant
// columns; show prints the full record.
func renderTable(records []record.PatientRecord) string {
	if len(records) == 0 {
		return "queue is empty"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAGE\tTRIAGE\tSTATUS\tARRIVED")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			rec.ID, rec.Name, rec.Age, rec.TriageLevel, rec.Status, rec.Timestamp.ISO())
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

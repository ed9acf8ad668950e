package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/triagedesk/triagedesk/internal/record"
)

// NewShowCommand creates the show command: one record in full,
// including its audit trail and handover notes.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show <id>",
		Short:         "Show a patient record with its history",
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

			rec, err := s.GetByID(cmd.Context(), args[0])
			if err != nil {
				return formatter.Failure(err)
			}

			if rootOpts.Format == "json" {
				return formatter.Success(rec)
			}
			return formatter.Success(renderRecord(rec))
		},
	}

	return cmd
}

func renderRecord(rec record.PatientRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%d) - %s, %s\n", rec.Name, rec.Age, rec.TriageLevel, rec.Status)
	fmt.Fprintf(&b, "id:        %s\n", rec.ID)
	fmt.Fprintf(&b, "arrived:   %s\n", rec.Timestamp.ISO())
	fmt.Fprintf(&b, "updated:   %s\n", rec.LastUpdated.ISO())
	if len(rec.Symptoms) > 0 {
		fmt.Fprintf(&b, "symptoms:  %s\n", strings.Join(rec.Symptoms, ", "))
	}
	if rec.Condition != "" {
		fmt.Fprintf(&b, "condition: %s\n", rec.Condition)
	}
	if rec.Notes != "" {
		fmt.Fprintf(&b, "notes:     %s\n", rec.Notes)
	}

	writeFormField(&b, "patient number", rec.PatientNumber)
	writeFormField(&b, "main complaint", rec.MainComplaint)
	writeFormField(&b, "medical history", rec.MedicalHistory)
	writeFormField(&b, "examination", rec.ExaminationFindings)
	writeFormField(&b, "provisional dx", rec.ProvisionalDiagnosis)
	writeFormField(&b, "treatment plan", rec.TreatmentPlan)

	if len(rec.StatusChanges) > 0 {
		fmt.Fprintf(&b, "\nhistory (%d):\n", len(rec.StatusChanges))
		for _, sc := range rec.StatusChanges {
			marker := " "
			if sc.IsHighlighted {
				marker = "*"
			}
			fmt.Fprintf(&b, "  %s %s  %-9s  %s -> %s", marker, sc.Timestamp.ISO(), sc.ChangeType, sc.PreviousValue, sc.NewValue)
			if sc.StaffName != "" {
				fmt.Fprintf(&b, "  (%s)", sc.StaffName)
			}
			b.WriteByte('\n')
		}
	}

	if len(rec.HandoverNotes) > 0 {
		fmt.Fprintf(&b, "\nhandover notes (%d):\n", len(rec.HandoverNotes))
		for _, hn := range rec.HandoverNotes {
			fmt.Fprintf(&b, "  %s [%s/%s] %s: %s\n",
				hn.Timestamp.ISO(), hn.ShiftType, hn.Priority, hn.StaffName, hn.Summary)
			for _, u := range hn.CriticalUpdates {
				fmt.Fprintf(&b, "    ! %s\n", u)
			}
			if hn.KeyObservations != "" {
				fmt.Fprintf(&b, "    obs: %s\n", hn.KeyObservations)
			}
			for _, a := range hn.ActionItems {
				fmt.Fprintf(&b, "    - %s\n", a)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeFormField(b *strings.Builder, label, value string) {
	if value != "" {
		fmt.Fprintf(b, "%-10s %s\n", label+":", value)
	}
}

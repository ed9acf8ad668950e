package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/triagedesk/triagedesk/internal/record"
)

// NewUpdateCommand creates the update command: a partial update built
// from exactly the flags the user set. Changes to status, triage,
// notes and treatment plan land in the record's audit trail.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		name      string
		age       int
		symptoms  []string
		condition string
		level     string
		status    string
		notes     string
		treatment string
		staff     string

		complaint string
		history   string
		findings  string
		diagnosis string
	)

	cmd := &cobra.Command{
		Use:           "update <id>",
		Short:         "Update a patient record",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			// Only flags the user actually set become part of the patch;
			// everything else stays absent, not zeroed.
			p := record.Patch{StaffName: staff}
			flags := cmd.Flags()
			if flags.Changed("name") {
				p.Name = &name
			}
			if flags.Changed("age") {
				p.Age = &age
			}
			if flags.Changed("symptom") {
				p.Symptoms = symptoms
			}
			if flags.Changed("condition") {
				p.Condition = &condition
			}
			if flags.Changed("triage") {
				l := record.TriageLevel(level)
				p.TriageLevel = &l
			}
			if flags.Changed("status") {
				st := record.Status(status)
				p.Status = &st
			}
			if flags.Changed("notes") {
				p.Notes = &notes
			}
			if flags.Changed("treatment") {
				p.TreatmentPlan = &treatment
			}
			if flags.Changed("complaint") {
				p.MainComplaint = &complaint
			}
			if flags.Changed("history") {
				p.MedicalHistory = &history
			}
			if flags.Changed("findings") {
				p.ExaminationFindings = &findings
			}
			if flags.Changed("diagnosis") {
				p.ProvisionalDiagnosis = &diagnosis
			}

			if p.IsZero() {
				return &ExitError{Code: ExitCommandError, Message: "nothing to update: set at least one field flag"}
			}
			if err := p.Validate(); err != nil {
				return formatter.Failure(err)
			}

			s, err := openStore(rootOpts)
			if err != nil {
				return &ExitError{Code: ExitCommandError, Message: "cannot open patient database", Err: err}
			}
			defer s.Close()

			if err := s.Update(cmd.Context(), args[0], p); err != nil {
				return formatter.Failure(err)
			}

			if rootOpts.Format == "json" {
				return formatter.Success(map[string]string{"id": args[0]})
			}
			return formatter.Success(fmt.Sprintf("updated %s", args[0]))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "patient name")
	cmd.Flags().IntVar(&age, "age", 0, "patient age, 0-150")
	cmd.Flags().StringSliceVar(&symptoms, "symptom", nil, "replace the symptom list (repeatable)")
	cmd.Flags().StringVar(&condition, "condition", "", "condition description")
	cmd.Flags().StringVar(&level, "triage", "", "triage level (Critical|Urgent|Stable)")
	cmd.Flags().StringVar(&status, "status", "", "workflow status")
	cmd.Flags().StringVar(&notes, "notes", "", "free-text notes")
	cmd.Flags().StringVar(&treatment, "treatment", "", "treatment plan")
	cmd.Flags().StringVar(&staff, "staff", "", "staff member recorded on audit entries")
	cmd.Flags().StringVar(&complaint, "complaint", "", "main complaint")
	cmd.Flags().StringVar(&history, "history", "", "medical history")
	cmd.Flags().StringVar(&findings, "findings", "", "examination findings")
	cmd.Flags().StringVar(&diagnosis, "diagnosis", "", "provisional diagnosis")

	return cmd
}

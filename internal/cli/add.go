package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/triagedesk/triagedesk/internal/record"
	"github.com/triagedesk/triagedesk/internal/triage"
)

// NewAddCommand creates the add command: patient intake.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		name      string
		age       int
		symptoms  []string
		condition string
		level     string

		patientNumber string
		complaint     string
		history       string
		findings      string
		diagnosis     string
		treatment     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a patient in the triage queue",
		Long: `Register a patient. Unless --triage overrides it, the triage level
is assigned by the keyword classifier from the symptoms and condition.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			assigned := record.TriageLevel(level)
			if level == "" {
				assigned = triage.AssignLevel(symptoms, condition)
				formatter.VerboseLog("classifier assigned level %s", assigned)
			}

			for _, s := range symptoms {
				if !triage.IsKnownSymptom(s) {
					formatter.VerboseLog("symptom %q is outside the intake vocabulary", s)
				}
			}

			p := record.NewPatient{
				Name:                 name,
				Age:                  age,
				Symptoms:             symptoms,
				Condition:            condition,
				PatientNumber:        patientNumber,
				MainComplaint:        complaint,
				MedicalHistory:       history,
				ExaminationFindings:  findings,
				ProvisionalDiagnosis: diagnosis,
				TreatmentPlan:        treatment,
				TriageLevel:          assigned,
			}
			if err := p.Validate(); err != nil {
				return formatter.Failure(err)
			}

			s, err := openStore(rootOpts)
			if err != nil {
				return &ExitError{Code: ExitCommandError, Message: "cannot open patient database", Err: err}
			}
			defer s.Close()

			id, err := s.Create(cmd.Context(), p)
			if err != nil {
				return formatter.Failure(err)
			}

			if rootOpts.Format == "json" {
				return formatter.Success(map[string]string{
					"id":          id,
					"triageLevel": string(assigned),
				})
			}
			return formatter.Success(fmt.Sprintf("registered %s (%s) as %s", name, strings.ToLower(string(assigned)), id))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "patient name (required)")
	cmd.Flags().IntVar(&age, "age", 0, "patient age, 0-150")
	cmd.Flags().StringSliceVar(&symptoms, "symptom", nil, "intake symptom (repeatable)")
	cmd.Flags().StringVar(&condition, "condition", "", "free-text condition description")
	cmd.Flags().StringVar(&level, "triage", "", "override the classifier (Critical|Urgent|Stable)")
	cmd.Flags().StringVar(&patientNumber, "patient-number", "", "hospital form patient identifier")
	cmd.Flags().StringVar(&complaint, "complaint", "", "main complaint")
	cmd.Flags().StringVar(&history, "history", "", "medical history")
	cmd.Flags().StringVar(&findings, "findings", "", "examination findings")
	cmd.Flags().StringVar(&diagnosis, "diagnosis", "", "provisional diagnosis")
	cmd.Flags().StringVar(&treatment, "treatment", "", "treatment plan")
	cmd.MarkFlagRequired("name")

	return cmd
}

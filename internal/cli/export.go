package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/triagedesk/triagedesk/internal/export"
)

// NewExportCommand creates the export command: render the queue to a
// portable format and save it under a timestamped filename.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "export <csv|json>",
		Short:         "Export the patient queue to a file",
		Long: `Export the queue. csv writes the fixed-column delimited format;
json writes the structured document with the full records. The file
lands in --export-dir under a triage-export_<timestamp> name.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			kind := args[0]
			if kind != "csv" && kind != "json" {
				return &ExitError{Code: ExitCommandError, Message: fmt.Sprintf("unknown export format %q: use csv or json", kind)}
			}

			s, err := openStore(rootOpts)
			if err != nil {
				return &ExitError{Code: ExitCommandError, Message: "cannot open patient database", Err: err}
			}
			defer s.Close()

			exp := export.New(s)
			saver := export.DirSaver{Dir: rootOpts.ExportDir, Log: rootOpts.log}

			var (
				content     string
				contentType string
			)
			switch kind {
			case "csv":
				content, err = exp.DelimitedText(cmd.Context())
				contentType = "text/csv"
			case "json":
				content, err = exp.StructuredText(cmd.Context())
				contentType = "application/json"
			}
			if err != nil {
				return formatter.Failure(err)
			}

			if kind == "csv" && content == export.NoDataSentinel {
				formatter.VerboseLog("store is empty; writing the sentinel document")
			}

			filename := exp.TimestampedFilename("triage-export", kind)
			if err := saver.Save([]byte(content), filename, contentType); err != nil {
				return formatter.Failure(err)
			}

			if rootOpts.Format == "json" {
				return formatter.Success(map[string]string{"file": filename})
			}
			return formatter.Success(fmt.Sprintf("exported to %s", filename))
		},
	}

	return cmd
}

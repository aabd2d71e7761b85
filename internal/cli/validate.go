package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/objbase/objbase/internal/schemafile"
)

// ValidationResult summarizes one document's outcome for output.
type ValidationResult struct {
	Index  int    `json:"index"`
	Record string `json:"record"`
	Valid  bool   `json:"valid"`
	Error  string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command: construct each YAML
// document against its declared schema and report pass/fail.
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	var schemasDir string

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate YAML record documents against CUE schemas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}

			schemas, errs := schemafile.LoadDir(schemasDir, schemafile.LoadModeCollectAll)
			if len(errs) > 0 {
				formatter.Error(ErrCodeSchemaLoad, fmt.Sprintf("loading schemas from %s", schemasDir), errorStrings(errs))
				return NewExitError(ExitCommandError, "schema load failed")
			}
			formatter.VerboseLog("loaded %d schema(s) from %s", len(schemas), schemasDir)

			docs, err := ReadDocuments(args[0])
			if err != nil {
				formatter.Error(ErrCodeBadDocument, fmt.Sprintf("reading %s", args[0]), err.Error())
				return WrapExitError(ExitCommandError, "reading documents", err)
			}

			results := make([]ValidationResult, 0, len(docs))
			failures := 0
			for i, doc := range docs {
				res := ValidationResult{Index: i + 1, Record: doc.Record, Valid: true}
				if _, buildErr := BuildRecord(schemas, doc); buildErr != nil {
					res.Valid = false
					res.Error = buildErr.Error()
					failures++
				}
				results = append(results, res)
			}

			if opts.Format == "json" {
				formatter.Success(map[string]any{
					"documents": len(docs),
					"failures":  failures,
					"results":   results,
				})
			} else {
				for _, res := range results {
					if res.Valid {
						fmt.Fprintf(formatter.Writer, "ok   %d %s\n", res.Index, res.Record)
					} else {
						fmt.Fprintf(formatter.Writer, "FAIL %d %s: %s\n", res.Index, res.Record, res.Error)
					}
				}
				fmt.Fprintf(formatter.Writer, "%d document(s), %d failure(s)\n", len(docs), failures)
			}

			if failures > 0 {
				return NewExitError(ExitFailure, fmt.Sprintf("%d document(s) failed validation", failures))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&schemasDir, "schemas", ".", "directory containing CUE schema files")
	return cmd
}

func errorStrings(errs []error) []string {
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}
	return out
}

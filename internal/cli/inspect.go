package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/objbase/objbase/internal/schemafile"
)

// NewInspectCommand creates the inspect command: construct each YAML
// document and print the resulting record as ordered JSON.
func NewInspectCommand(opts *RootOptions) *cobra.Command {
	var schemasDir string

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print YAML record documents as validated, ordered JSON",
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

			docs, err := ReadDocuments(args[0])
			if err != nil {
				formatter.Error(ErrCodeBadDocument, fmt.Sprintf("reading %s", args[0]), err.Error())
				return WrapExitError(ExitCommandError, "reading documents", err)
			}

			var rendered []json.RawMessage
			for i, doc := range docs {
				rec, buildErr := BuildRecord(schemas, doc)
				if buildErr != nil {
					formatter.Error(ErrCodeRejected, fmt.Sprintf("document %d (%s)", i+1, doc.Record), buildErr.Error())
					return NewExitError(ExitFailure, "document rejected")
				}
				data, jsonErr := rec.ToJSON()
				if jsonErr != nil {
					formatter.Error(ErrCodeRejected, fmt.Sprintf("document %d (%s)", i+1, doc.Record), jsonErr.Error())
					return NewExitError(ExitFailure, "document not serializable")
				}
				rendered = append(rendered, json.RawMessage(data))
			}

			if opts.Format == "json" {
				return formatter.Success(map[string]any{"records": rendered})
			}
			for _, data := range rendered {
				fmt.Fprintln(formatter.Writer, string(data))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&schemasDir, "schemas", ".", "directory containing CUE schema files")
	return cmd
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/gendefaults/defaults"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the definitions file",
		Long: `Schema prints the draft-07 JSON Schema every definitions file is validated
against. Point an editor at it for completion and inline errors.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := defaults.SchemaJSON()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List available models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}

			models, err := client.ListModels(cmd.Context())
			if err != nil {
				return a.handleError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(models)
			}
			for _, m := range models {
				fmt.Fprintf(a.stdout, "%s\t%s\n", m.ID, m.OwnedBy)
			}
			return nil
		},
	}
}

package cmd

import (
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch-messages",
	Short: "Fetch recent messages from the source Slack channel",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return app.ingestion.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

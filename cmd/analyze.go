package cmd

import (
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze-messages",
	Short: "Analyze unprocessed messages and extract scheduled events",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return app.extraction.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

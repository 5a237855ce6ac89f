package cmd

import (
	"github.com/spf13/cobra"
)

var notifyCmd = &cobra.Command{
	Use:   "notify-events",
	Short: "Post a batched notification for today's scheduled events",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return app.notification.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(notifyCmd)
}

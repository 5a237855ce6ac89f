package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "schedbot",
	Short: "Slack schedule extraction pipeline",
	Long: `schedbot ingests Slack messages, extracts scheduled events from them
with an LLM and posts daily batched notifications back to Slack.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

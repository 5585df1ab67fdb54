package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "newsdeskctl",
	Short: "Run and administer the newsdesk server",
	Long: `Run and administer the newsdesk approval server.

Configuration is read from $NEWSDESK_CONFIG_PATH/newsdesk.yml and NEWSDESK_*
environment variables. Secrets (NEWSDESK_TOKEN_KEY, DATABASE_URL) come from
the environment only.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}

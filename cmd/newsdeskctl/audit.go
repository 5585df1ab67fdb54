package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/newsdesk/pkg/audit"
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the audit trail",
	Long:  `Inspect audit messages persisted to AUDIT_DATABASE_URL.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'audit' requires a subcommand (recent)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var auditRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Print the most recent audit messages",
	Long: `Print the most recent audit messages, newest first, one JSON object
per line.

Example:
  newsdeskctl audit recent --limit 20`,
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		if err := printRecentAudit(limit); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read audit trail: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditRecentCmd)
	auditRecentCmd.Flags().IntP("limit", "n", 50, "Number of messages")
}

func printRecentAudit(limit int) error {
	s, err := audit.NewStore()
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("AUDIT_DATABASE_URL environment variable is required")
	}
	defer func() { _ = s.Close() }()

	messages, err := s.Recent(limit)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	for _, m := range messages {
		if err := enc.Encode(m); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/newsdesk/pkg/config"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
)

// tokenIssueCmd represents the token issue command
var tokenIssueCmd = &cobra.Command{
	Use:   "issue <principal>",
	Short: "Issue a bearer token for a principal",
	Long: `Issue a signed bearer token whose subject is the given principal.

The token is signed with NEWSDESK_TOKEN_KEY and carries the configured issuer
and lifetime (token_issuer, token_ttl).

Example:
  curl -H "Authorization: Bearer $(newsdeskctl token issue owner)" localhost:8000/pool`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		token, err := issueToken(identity.Principal(args[0]))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(token)
	},
}

func init() {
	tokenCmd.AddCommand(tokenIssueCmd)
}

func issueToken(p identity.Principal) (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}
	authn, err := newAuthenticator(cfg)
	if err != nil {
		return "", err
	}
	return authn.Issue(p)
}

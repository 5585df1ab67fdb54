package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/newsdesk/pkg/authenticator/authn_jwt"
	"github.com/doodlesbykumbi/newsdesk/pkg/config"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage bearer tokens",
	Long:  `Issue bearer tokens and generate the token signing key.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'token' requires a subcommand (issue, key-generate)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}

// tokenKey decodes NEWSDESK_TOKEN_KEY.
func tokenKey() ([]byte, error) {
	raw, ok := os.LookupEnv("NEWSDESK_TOKEN_KEY")
	if !ok || raw == "" {
		return nil, fmt.Errorf("NEWSDESK_TOKEN_KEY environment variable is required")
	}
	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("bad NEWSDESK_TOKEN_KEY: %w", err)
	}
	return key, nil
}

func newAuthenticator(cfg *config.NewsdeskConfig) (*authn_jwt.Authenticator, error) {
	key, err := tokenKey()
	if err != nil {
		return nil, err
	}
	return authn_jwt.New(authn_jwt.Config{
		Key:    key,
		Issuer: cfg.TokenIssuer,
		TTL:    cfg.TokenLifetime(),
	})
}

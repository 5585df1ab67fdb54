package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/newsdesk/pkg/config"
	"github.com/doodlesbykumbi/newsdesk/pkg/db"
	"github.com/doodlesbykumbi/newsdesk/pkg/engine"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	gormstore "github.com/doodlesbykumbi/newsdesk/pkg/server/store/gorm"
)

// accountFundCmd represents the account fund command
var accountFundCmd = &cobra.Command{
	Use:   "fund <principal> <amount>",
	Short: "Credit an external account from outside the system",
	Long: `Credit an external account from outside the system.

This is the only way value enters the ledger. It writes directly to the
postgres store and requires DATABASE_URL.

Example:
  newsdeskctl account fund owner 500000000`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		amount, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid amount %q\n", args[1])
			os.Exit(1)
		}
		if err := fundAccount(cmd.Context(), identity.Principal(args[0]), amount); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to fund account: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Funded '%s' with %d\n", args[0], amount)
	},
}

var accountBalanceCmd = &cobra.Command{
	Use:   "balance <principal>",
	Short: "Show the external balance of a principal",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e, err := adminEngine()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open store: %v\n", err)
			os.Exit(1)
		}
		balance, err := e.Balance(cmd.Context(), identity.Principal(args[0]))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read balance: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(balance)
	},
}

func init() {
	accountCmd.AddCommand(accountFundCmd)
	accountCmd.AddCommand(accountBalanceCmd)
}

// adminEngine opens an engine over the postgres store for offline commands.
func adminEngine() (*engine.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	database, err := db.Connect(db.Config{})
	if err != nil {
		return nil, err
	}
	return engine.New(gormstore.NewStore(database), cfg.OwnerPrincipal(),
		engine.WithFixedFee(cfg.FixedFee),
		engine.WithCapacity(cfg.RegistryCapacity),
	), nil
}

func fundAccount(ctx context.Context, p identity.Principal, amount uint64) error {
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := adminEngine()
	if err != nil {
		return err
	}
	return e.Fund(ctx, p, amount)
}

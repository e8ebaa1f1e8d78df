package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fakturio-inc/fakturio/internal/interfaces/cli/migrate"
	"github.com/fakturio-inc/fakturio/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fakturio",
		Short: "Fakturio - entitlement and subscription lifecycle engine",
		Long:  `Fakturio answers feature, module and quota access questions for accounts and orchestrates subscription plan changes against the payment processor.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

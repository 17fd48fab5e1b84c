package main

import (
	"fmt"
	"os"

	"github.com/smarterworkco/GPT-UI/internal/cli"
	"github.com/smarterworkco/GPT-UI/internal/cli/admin"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bizhubd",
		Short: "bizhub API server and admin CLI",
		Long:  "bizhub daemon for running the API server, applying migrations and managing accounts",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.MigrateCmd())
	rootCmd.AddCommand(admin.UserCmd())
	rootCmd.AddCommand(admin.SeedCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

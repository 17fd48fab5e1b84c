package main

import (
	"fmt"
	"os"

	"github.com/smarterworkco/GPT-UI/internal/cli"
	"github.com/smarterworkco/GPT-UI/internal/cli/client"
)

var version = "dev"

func main() {
	rootCmd := client.NewRootCmd(version)
	cli.AddHelpJSONFlag(rootCmd)

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

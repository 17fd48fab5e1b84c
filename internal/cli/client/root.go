package client

import "github.com/spf13/cobra"

// NewRootCmd builds the bizhub command tree
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bizhub",
		Short: "bizhub CLI - manage your business hub from the terminal",
		Long: `bizhub CLI works with documents, feedback and the AI assistant of a bizhub server.

Environment variables:
  BIZHUB_TOKEN     Session token (overrides the stored login)
  BIZHUB_API_URL   API base URL (default: http://localhost:8080)`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("token", "", "Session token (overrides env and config)")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env and config)")

	rootCmd.AddCommand(LoginCmd())
	rootCmd.AddCommand(RegisterCmd())
	rootCmd.AddCommand(LogoutCmd())
	rootCmd.AddCommand(StatusCmd())
	rootCmd.AddCommand(DocsCmd())
	rootCmd.AddCommand(FeedbackCmd())
	rootCmd.AddCommand(AskCmd())
	rootCmd.AddCommand(MetricsCmd())

	return rootCmd
}

package client

import (
	"fmt"

	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/spf13/cobra"
)

// MetricsCmd creates the metrics command
func MetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show dashboard metrics for your business",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}

			var m domain.BusinessMetrics
			if err := api.Get("/api/analytics/metrics", &m); err != nil {
				return fmt.Errorf("failed to load metrics: %w", err)
			}

			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), m)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Documents:       %d\n", m.TotalDocuments)
			fmt.Fprintf(out, "Recent updates:  %d\n", m.RecentUpdates)
			fmt.Fprintf(out, "AI interactions: %d\n", m.AIInteractions)
			return nil
		},
	}
}

package client

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/spf13/cobra"
)

// FeedbackCmd creates the feedback parent command
func FeedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "List and submit feedback requests",
	}

	cmd.AddCommand(feedbackListCmd())
	cmd.AddCommand(feedbackSubmitCmd())

	return cmd
}

func feedbackListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List feedback requests, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}

			var items []domain.FeedbackRequest
			if err := api.Get("/api/feedback", &items); err != nil {
				return fmt.Errorf("failed to list feedback: %w", err)
			}

			if wantJSON(cmd) {
				if items == nil {
					items = []domain.FeedbackRequest{}
				}
				return printJSON(cmd.OutOrStdout(), items)
			}

			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No feedback submitted yet")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTYPE\tPRIORITY\tSTATUS\tTITLE\tCREATED")
			for _, f := range items {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
					f.ID, f.Type, f.Priority, f.Status, f.Title, f.CreatedAt.Local().Format(time.DateTime))
			}
			return tw.Flush()
		},
	}
}

func feedbackSubmitCmd() *cobra.Command {
	var feedbackType, title, description, priority string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a feature request, bug report or support question",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}

			var created domain.FeedbackRequest
			err = api.Post("/api/feedback", map[string]string{
				"type":        feedbackType,
				"title":       title,
				"description": description,
				"priority":    priority,
			}, &created)
			if err != nil {
				return fmt.Errorf("failed to submit feedback: %w", err)
			}

			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted feedback %d (%s)\n", created.ID, created.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&feedbackType, "type", "feature", "Type (feature|bug|improvement|support)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "Title (required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description (required)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "Priority (low|medium|high)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

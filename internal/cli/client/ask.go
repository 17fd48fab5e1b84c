package client

import (
	"fmt"
	"strings"

	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/spf13/cobra"
)

type askResponse struct {
	UserMessage      *domain.ChatMessage `json:"userMessage"`
	AssistantMessage *domain.ChatMessage `json:"assistantMessage"`
}

// AskCmd creates the ask command.
// Without --session or --agent the prompt is sent statelessly.
func AskCmd() *cobra.Command {
	var (
		sessionID int64
		agent     string
	)

	cmd := &cobra.Command{
		Use:   "ask <prompt>",
		Short: "Ask the business assistant a question",
		Long: `Sends a prompt to the AI assistant.

With --session the question and reply are stored in that chat session.
With --agent a new session for that agent type is started first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.TrimSpace(strings.Join(args, " "))
			if content == "" {
				return fmt.Errorf("prompt cannot be empty")
			}

			api, err := NewAPIClientWithCmd(cmd)
			if err != nil {
				return err
			}

			if sessionID == 0 && agent == "" {
				return runPrompt(cmd, api, content)
			}

			if sessionID == 0 {
				var session domain.ChatSession
				if err := api.Post("/api/chat/sessions", map[string]string{"agentType": agent}, &session); err != nil {
					return fmt.Errorf("failed to start chat session: %w", err)
				}
				sessionID = session.ID
				if !wantJSON(cmd) {
					fmt.Fprintf(cmd.ErrOrStderr(), "Started %s session %d\n", session.AgentType, session.ID)
				}
			}

			var res askResponse
			if err := api.Post(fmt.Sprintf("/api/chat/sessions/%d/ask", sessionID), map[string]string{"content": content}, &res); err != nil {
				if IsNotFound(err) {
					return fmt.Errorf("chat session %d not found", sessionID)
				}
				return fmt.Errorf("ask failed: %w", err)
			}

			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), res)
			}
			if res.AssistantMessage != nil {
				fmt.Fprintln(cmd.OutOrStdout(), res.AssistantMessage.Content)
			}
			return nil
		},
	}

	cmd.Flags().Int64VarP(&sessionID, "session", "s", 0, "Chat session to continue")
	cmd.Flags().StringVarP(&agent, "agent", "a", "", "Start a new session with this agent (general|sop|compliance|social)")

	return cmd
}

func runPrompt(cmd *cobra.Command, api *APIClient, content string) error {
	var res struct {
		Reply string `json:"reply"`
	}
	if err := api.Post("/api/chat/", map[string]string{"prompt": content}, &res); err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if wantJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), res)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Reply)
	return nil
}

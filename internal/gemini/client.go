// Package gemini completes chat turns with Google's Gemini models.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/smarterworkco/GPT-UI/internal/domain"
	"google.golang.org/api/option"
)

const (
	DefaultChatModel = "gemini-1.5-flash"
	ProviderName     = "gemini"
)

var (
	ErrEmptyHistory = errors.New("completion history cannot be empty")
	// ErrLastTurnNotUser is returned when the final turn was not written by the user
	ErrLastTurnNotUser = errors.New("last turn in history is not from the user")
	ErrEmptyResponse   = errors.New("gemini returned no text")
)

// sender sends the final user parts on top of prior history
type sender interface {
	Send(ctx context.Context, system string, history []*genai.Content, parts []genai.Part) (*genai.GenerateContentResponse, error)
}

// Client completes chat turns through the Gemini API
type Client struct {
	api    sender
	closer func() error
}

// NewClient connects to Gemini with apiKey. Call Close when done.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if model == "" {
		model = DefaultChatModel
	}
	gc, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Client{
		api:    &modelSender{client: gc, model: model},
		closer: gc.Close,
	}, nil
}

// Provider returns the provider label
func (c *Client) Provider() string {
	return ProviderName
}

// Close releases the underlying connection
func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

// Complete replays history as a Gemini chat and sends the final user turn
func (c *Client) Complete(ctx context.Context, system string, history []domain.Turn) (string, error) {
	if len(history) == 0 {
		return "", ErrEmptyHistory
	}
	last := history[len(history)-1]
	if last.Role != domain.MessageRoleUser {
		return "", ErrLastTurnNotUser
	}

	resp, err := c.api.Send(ctx, system, toContents(history[:len(history)-1]), []genai.Part{genai.Text(last.Content)})
	if err != nil {
		return "", fmt.Errorf("gemini chat SendMessage failed: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func toContents(turns []domain.Turn) []*genai.Content {
	out := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		role := "user"
		if t.Role == domain.MessageRoleAssistant {
			role = "model"
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(t.Content)},
		})
	}
	return out
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(b.String())
}

type modelSender struct {
	client *genai.Client
	model  string
}

func (s *modelSender) Send(ctx context.Context, system string, history []*genai.Content, parts []genai.Part) (*genai.GenerateContentResponse, error) {
	model := s.client.GenerativeModel(s.model)
	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}

	cs := model.StartChat()
	cs.History = history
	return cs.SendMessage(ctx, parts...)
}

package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/smarterworkco/GPT-UI/internal/domain"
)

const (
	// DefaultChatModel is the OpenAI model used when none is configured
	DefaultChatModel = openai.GPT4
	// ProviderName labels metrics and spans for this provider
	ProviderName = "openai"
)

var (
	// ErrEmptyHistory is returned when there is nothing to complete
	ErrEmptyHistory = errors.New("completion history cannot be empty")
	// ErrNoChoices is returned when the API answers without any choice
	ErrNoChoices = errors.New("no completion choices returned")
)

// ChatAPI defines the subset of the OpenAI API used for chat completions
type ChatAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client turns conversation history into a single assistant reply
type Client struct {
	api   ChatAPI
	model string
}

type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint, used for compatible gateways
	BaseURL string
}

// NewClient creates a new OpenAI client using defaults.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(Config{APIKey: apiKey})
}

// NewClientWithConfig creates a new OpenAI client with explicit configuration.
func NewClientWithConfig(cfg Config) *Client {
	model := cfg.Model
	if model == "" {
		model = DefaultChatModel
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(clientCfg),
		model: model,
	}
}

// Provider returns the provider label
func (c *Client) Provider() string {
	return ProviderName
}

// Complete sends the system prompt followed by history and returns the
// first choice's content.
func (c *Client) Complete(ctx context.Context, system string, history []domain.Turn) (string, error) {
	if len(history) == 0 {
		return "", ErrEmptyHistory
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	for _, turn := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    chatRole(turn.Role),
			Content: turn.Content,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func chatRole(role domain.MessageRole) string {
	if role == domain.MessageRoleAssistant {
		return openai.ChatMessageRoleAssistant
	}
	return openai.ChatMessageRoleUser
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/smarterworkco/GPT-UI/internal/telemetry"
	"go.uber.org/zap"
)

// NoResponseReply stands in for a completion that came back empty
const NoResponseReply = "No response"

// Completer produces an assistant reply for a system prompt and the
// conversation so far. The last turn is the user's new message.
type Completer interface {
	Complete(ctx context.Context, system string, history []domain.Turn) (string, error)
	Provider() string
}

// ChatRepository is the slice of the repository needed for chat
type ChatRepository interface {
	GetChatMessages(ctx context.Context, sessionID int64) ([]domain.ChatMessage, error)
	CreateChatMessage(ctx context.Context, in domain.CreateChatMessageInput) (*domain.ChatMessage, error)
}

// AskResult holds both messages appended by Ask
type AskResult struct {
	UserMessage      *domain.ChatMessage `json:"userMessage"`
	AssistantMessage *domain.ChatMessage `json:"assistantMessage"`
}

type ChatService struct {
	repo      ChatRepository
	completer Completer
	logger    *zap.Logger
}

func NewChatService(repo ChatRepository, completer Completer, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{repo: repo, completer: completer, logger: logger}
}

// Ask appends the user's message to session, asks the session's agent
// persona for a reply using the full history, and appends that reply. When
// the completion fails the user message stays recorded.
func (s *ChatService) Ask(ctx context.Context, session *domain.ChatSession, content string) (*AskResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "chat.ask", telemetry.SpanAttributes{
		BusinessID: session.BusinessID,
		SessionID:  session.ID,
		Provider:   s.completer.Provider(),
		Operation:  "ask",
	})
	defer span.End()

	userMsg, err := s.repo.CreateChatMessage(ctx, domain.CreateChatMessageInput{
		SessionID: session.ID,
		Role:      domain.MessageRoleUser,
		Content:   content,
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	history, err := s.repo.GetChatMessages(ctx, session.ID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	agent := domain.AgentFor(session.AgentType)
	reply, err := s.complete(ctx, agent.SystemPrompt, domain.TurnsFromMessages(history))
	if err != nil {
		span.SetError(err)
		s.logger.Warn("chat completion failed",
			zap.Int64("session_id", session.ID),
			zap.String("agent", string(agent.Type)),
			zap.Error(err),
		)
		return nil, err
	}

	assistantMsg, err := s.repo.CreateChatMessage(ctx, domain.CreateChatMessageInput{
		SessionID: session.ID,
		Role:      domain.MessageRoleAssistant,
		Content:   reply,
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	return &AskResult{UserMessage: userMsg, AssistantMessage: assistantMsg}, nil
}

// Prompt answers a single stateless prompt with the default advisor persona
func (s *ChatService) Prompt(ctx context.Context, prompt string) (string, error) {
	ctx, span := telemetry.StartSpan(ctx, "chat.prompt", telemetry.SpanAttributes{
		Provider:  s.completer.Provider(),
		Operation: "prompt",
	})
	defer span.End()

	reply, err := s.complete(ctx, domain.DefaultSystemPrompt, []domain.Turn{
		{Role: domain.MessageRoleUser, Content: prompt},
	})
	if err != nil {
		span.SetError(err)
		s.logger.Warn("prompt completion failed", zap.Error(err))
		return "", err
	}
	return reply, nil
}

func (s *ChatService) complete(ctx context.Context, system string, history []domain.Turn) (string, error) {
	provider := s.completer.Provider()
	telemetry.AddBreadcrumb(ctx, "ai", fmt.Sprintf("completion via %s with %d turns", provider, len(history)))

	start := time.Now()
	reply, err := s.completer.Complete(ctx, system, history)
	telemetry.RecordCompletion(provider, time.Since(start), err)
	if err != nil {
		var de *domain.DomainError
		if errors.As(err, &de) {
			return "", err
		}
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeUnavailable, "ai provider request failed", err)
	}

	if strings.TrimSpace(reply) == "" {
		s.logger.Warn("ai provider returned an empty reply", zap.String("provider", provider))
		telemetry.CaptureMessage(ctx, "empty completion from "+provider)
		return NoResponseReply, nil
	}
	return reply, nil
}

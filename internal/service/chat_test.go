package service

import (
	"context"
	"errors"
	"testing"

	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/smarterworkco/GPT-UI/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, system string, history []domain.Turn) (string, error) {
	args := m.Called(ctx, system, history)
	return args.String(0), args.Error(1)
}

func (m *MockCompleter) Provider() string {
	return "mock"
}

func newChatFixture(t *testing.T, agent domain.AgentType) (*repository.MemoryRepository, *domain.ChatSession) {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemoryRepository()

	user, err := repo.CreateUser(ctx, domain.CreateUserInput{Username: "u", Email: "u@example.com", Password: "x"})
	require.NoError(t, err)
	biz, err := repo.CreateBusiness(ctx, domain.CreateBusinessInput{Name: "Biz", UserID: user.ID})
	require.NoError(t, err)
	session, err := repo.CreateChatSession(ctx, domain.CreateChatSessionInput{AgentType: agent, BusinessID: biz.ID})
	require.NoError(t, err)
	return repo, session
}

func TestChatService_Ask(t *testing.T) {
	ctx := context.Background()
	repo, session := newChatFixture(t, domain.AgentTypeSOP)

	_, err := repo.CreateChatMessage(ctx, domain.CreateChatMessageInput{
		SessionID: session.ID, Role: domain.MessageRoleUser, Content: "hi",
	})
	require.NoError(t, err)
	_, err = repo.CreateChatMessage(ctx, domain.CreateChatMessageInput{
		SessionID: session.ID, Role: domain.MessageRoleAssistant, Content: "hello",
	})
	require.NoError(t, err)

	completer := new(MockCompleter)
	wantHistory := []domain.Turn{
		{Role: domain.MessageRoleUser, Content: "hi"},
		{Role: domain.MessageRoleAssistant, Content: "hello"},
		{Role: domain.MessageRoleUser, Content: "write an onboarding SOP"},
	}
	completer.On("Complete", mock.Anything, domain.AgentFor(domain.AgentTypeSOP).SystemPrompt, wantHistory).
		Return("1. Greet the hire", nil)

	svc := NewChatService(repo, completer, nil)
	res, err := svc.Ask(ctx, session, "write an onboarding SOP")
	require.NoError(t, err)

	assert.Equal(t, domain.MessageRoleUser, res.UserMessage.Role)
	assert.Equal(t, "write an onboarding SOP", res.UserMessage.Content)
	assert.Equal(t, domain.MessageRoleAssistant, res.AssistantMessage.Role)
	assert.Equal(t, "1. Greet the hire", res.AssistantMessage.Content)

	msgs, err := repo.GetChatMessages(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 4)
	completer.AssertExpectations(t)
}

func TestChatService_AskCompletionFailureKeepsUserMessage(t *testing.T) {
	ctx := context.Background()
	repo, session := newChatFixture(t, domain.AgentTypeGeneral)

	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("boom"))

	svc := NewChatService(repo, completer, nil)
	_, err := svc.Ask(ctx, session, "hello?")
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeUnavailable, domain.CodeOf(err))

	msgs, err := repo.GetChatMessages(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.MessageRoleUser, msgs[0].Role)
}

func TestChatService_DomainErrorsPassThrough(t *testing.T) {
	repo, session := newChatFixture(t, domain.AgentTypeSocial)

	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", domain.ErrRateLimited)

	svc := NewChatService(repo, completer, nil)
	_, err := svc.Ask(context.Background(), session, "post ideas")
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestChatService_Prompt(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, domain.DefaultSystemPrompt, []domain.Turn{
		{Role: domain.MessageRoleUser, Content: "how do I price?"},
	}).Return("Cost plus margin.", nil)

	svc := NewChatService(repository.NewMemoryRepository(), completer, nil)
	reply, err := svc.Prompt(context.Background(), "how do I price?")
	require.NoError(t, err)
	assert.Equal(t, "Cost plus margin.", reply)
	completer.AssertExpectations(t)
}

func TestChatService_PromptFailure(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", domain.ErrCompletionUnavailable)

	svc := NewChatService(repository.NewMemoryRepository(), completer, nil)
	_, err := svc.Prompt(context.Background(), "anything")
	assert.ErrorIs(t, err, domain.ErrCompletionUnavailable)
}

func TestChatService_EmptyReplyFallsBack(t *testing.T) {
	ctx := context.Background()
	repo, session := newChatFixture(t, domain.AgentTypeGeneral)

	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("  \n", nil)

	svc := NewChatService(repo, completer, nil)
	res, err := svc.Ask(ctx, session, "anything?")
	require.NoError(t, err)
	assert.Equal(t, NoResponseReply, res.AssistantMessage.Content)

	reply, err := svc.Prompt(ctx, "still there?")
	require.NoError(t, err)
	assert.Equal(t, NoResponseReply, reply)

	msgs, err := repo.GetChatMessages(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, NoResponseReply, msgs[1].Content)
}

package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) GetDocuments(ctx context.Context, businessID int64) ([]domain.Document, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockSource) GetChatSessions(ctx context.Context, businessID int64) ([]domain.ChatSession, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChatSession), args.Error(1)
}

func (m *MockSource) GetChatMessages(ctx context.Context, sessionID int64) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChatMessage), args.Error(1)
}

var fixedNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestAggregator_RecentUpdates(t *testing.T) {
	ctx := context.Background()
	src := new(MockSource)

	docs := []domain.Document{
		{ID: 1, UpdatedAt: fixedNow.Add(-40 * 24 * time.Hour)},
		{ID: 2, UpdatedAt: fixedNow.Add(-35 * 24 * time.Hour)},
		{ID: 3, UpdatedAt: fixedNow.Add(-2 * 24 * time.Hour)},
		{ID: 4, UpdatedAt: fixedNow.Add(-time.Hour)},
	}
	src.On("GetDocuments", ctx, int64(1)).Return(docs, nil)
	src.On("GetChatSessions", ctx, int64(1)).Return([]domain.ChatSession{}, nil)

	m, err := NewAggregator(src, clock).BusinessMetrics(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, 4, m.TotalDocuments)
	assert.Equal(t, 2, m.RecentUpdates)
	assert.Equal(t, 0, m.AIInteractions)
	src.AssertExpectations(t)
}

func TestAggregator_WindowBoundaryIsExclusive(t *testing.T) {
	ctx := context.Background()
	src := new(MockSource)

	docs := []domain.Document{
		{ID: 1, UpdatedAt: fixedNow.Add(-domain.RecentUpdateWindow)},
		{ID: 2, UpdatedAt: fixedNow.Add(-domain.RecentUpdateWindow + time.Second)},
	}
	src.On("GetDocuments", ctx, int64(1)).Return(docs, nil)
	src.On("GetChatSessions", ctx, int64(1)).Return([]domain.ChatSession{}, nil)

	m, err := NewAggregator(src, clock).BusinessMetrics(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, 1, m.RecentUpdates)
}

func TestAggregator_AIInteractionsCountsUserMessagesOnly(t *testing.T) {
	ctx := context.Background()
	src := new(MockSource)

	src.On("GetDocuments", ctx, int64(5)).Return([]domain.Document{}, nil)
	src.On("GetChatSessions", ctx, int64(5)).Return([]domain.ChatSession{{ID: 10}, {ID: 11}}, nil)
	src.On("GetChatMessages", ctx, int64(10)).Return([]domain.ChatMessage{
		{Role: domain.MessageRoleUser},
		{Role: domain.MessageRoleAssistant},
		{Role: domain.MessageRoleUser},
	}, nil)
	src.On("GetChatMessages", ctx, int64(11)).Return([]domain.ChatMessage{
		{Role: domain.MessageRoleUser},
		{Role: domain.MessageRoleAssistant},
	}, nil)

	m, err := NewAggregator(src, clock).BusinessMetrics(ctx, 5)

	require.NoError(t, err)
	assert.Equal(t, 3, m.AIInteractions)
	src.AssertExpectations(t)
}

func TestAggregator_UnknownBusinessIsZero(t *testing.T) {
	ctx := context.Background()
	src := new(MockSource)
	src.On("GetDocuments", ctx, int64(99)).Return([]domain.Document{}, nil)
	src.On("GetChatSessions", ctx, int64(99)).Return([]domain.ChatSession{}, nil)

	m, err := NewAggregator(src, clock).BusinessMetrics(ctx, 99)

	require.NoError(t, err)
	assert.Equal(t, domain.BusinessMetrics{}, m)
}

func TestAggregator_SourceError(t *testing.T) {
	ctx := context.Background()
	src := new(MockSource)
	src.On("GetDocuments", ctx, int64(1)).Return(nil, errors.New("db down"))

	_, err := NewAggregator(src, clock).BusinessMetrics(ctx, 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

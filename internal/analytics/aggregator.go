// Package analytics computes dashboard metrics for a business from the
// entities held by a repository.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/smarterworkco/GPT-UI/internal/domain"
)

// Source is the read side the aggregator needs from a repository
type Source interface {
	GetDocuments(ctx context.Context, businessID int64) ([]domain.Document, error)
	GetChatSessions(ctx context.Context, businessID int64) ([]domain.ChatSession, error)
	GetChatMessages(ctx context.Context, sessionID int64) ([]domain.ChatMessage, error)
}

// Aggregator derives BusinessMetrics on demand. Nothing is cached.
type Aggregator struct {
	source Source
	now    func() time.Time
}

// NewAggregator creates an aggregator reading from source. A nil now uses time.Now.
func NewAggregator(source Source, now func() time.Time) *Aggregator {
	if now == nil {
		now = time.Now
	}
	return &Aggregator{source: source, now: now}
}

// BusinessMetrics counts the business's documents, the documents updated
// within RecentUpdateWindow, and the user-authored messages across all of
// its chat sessions. An unknown business yields all zeros.
func (a *Aggregator) BusinessMetrics(ctx context.Context, businessID int64) (domain.BusinessMetrics, error) {
	var m domain.BusinessMetrics

	docs, err := a.source.GetDocuments(ctx, businessID)
	if err != nil {
		return m, fmt.Errorf("list documents: %w", err)
	}
	cutoff := a.now().Add(-domain.RecentUpdateWindow)
	m.TotalDocuments = len(docs)
	for _, d := range docs {
		if d.UpdatedAt.After(cutoff) {
			m.RecentUpdates++
		}
	}

	sessions, err := a.source.GetChatSessions(ctx, businessID)
	if err != nil {
		return m, fmt.Errorf("list chat sessions: %w", err)
	}
	for _, s := range sessions {
		msgs, err := a.source.GetChatMessages(ctx, s.ID)
		if err != nil {
			return m, fmt.Errorf("list messages of session %d: %w", s.ID, err)
		}
		m.AIInteractions += CountUserMessages(msgs)
	}

	return m, nil
}

// CountUserMessages returns how many messages were authored by the user
func CountUserMessages(msgs []domain.ChatMessage) int {
	n := 0
	for _, msg := range msgs {
		if msg.Role == domain.MessageRoleUser {
			n++
		}
	}
	return n
}

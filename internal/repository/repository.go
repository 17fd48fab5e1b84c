// Package repository persists the business-management entities. Two
// backends implement Repository: an in-memory arena used by default and a
// Postgres store selected when a database URL is configured.
package repository

import (
	"context"
	"time"

	"github.com/smarterworkco/GPT-UI/internal/domain"
)

// Repository is the persistence contract shared by every backend. Lookups
// of a missing entity return a NOT_FOUND domain error. Owner ids passed in
// create inputs are trusted and not verified.
type Repository interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, in domain.CreateUserInput) (*domain.User, error)

	GetBusiness(ctx context.Context, userID int64) (*domain.Business, error)
	GetBusinessByID(ctx context.Context, id int64) (*domain.Business, error)
	CreateBusiness(ctx context.Context, in domain.CreateBusinessInput) (*domain.Business, error)
	UpdateBusiness(ctx context.Context, id int64, patch domain.BusinessPatch) (*domain.Business, error)

	GetDocuments(ctx context.Context, businessID int64) ([]domain.Document, error)
	GetDocument(ctx context.Context, id int64) (*domain.Document, error)
	CreateDocument(ctx context.Context, in domain.CreateDocumentInput) (*domain.Document, error)
	UpdateDocument(ctx context.Context, id int64, patch domain.DocumentPatch) (*domain.Document, error)
	DeleteDocument(ctx context.Context, id int64) (bool, error)

	GetFeedbackRequests(ctx context.Context, businessID int64) ([]domain.FeedbackRequest, error)
	CreateFeedbackRequest(ctx context.Context, in domain.CreateFeedbackInput) (*domain.FeedbackRequest, error)

	GetChatSessions(ctx context.Context, businessID int64) ([]domain.ChatSession, error)
	GetChatSession(ctx context.Context, id int64) (*domain.ChatSession, error)
	CreateChatSession(ctx context.Context, in domain.CreateChatSessionInput) (*domain.ChatSession, error)
	GetChatMessages(ctx context.Context, sessionID int64) ([]domain.ChatMessage, error)
	CreateChatMessage(ctx context.Context, in domain.CreateChatMessageInput) (*domain.ChatMessage, error)

	GetBusinessMetrics(ctx context.Context, businessID int64) (domain.BusinessMetrics, error)
}

// Option configures a repository backend
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used for createdAt/updatedAt stamps
// and for the recent-updates window.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func applyOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

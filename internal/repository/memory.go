package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/smarterworkco/GPT-UI/internal/analytics"
	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/smarterworkco/GPT-UI/internal/store"
)

var _ Repository = (*MemoryRepository)(nil)

// MemoryRepository keeps every entity in process memory. Owner lookups are
// linear scans over the relevant collection.
type MemoryRepository struct {
	users      *store.Collection[domain.User]
	businesses *store.Collection[domain.Business]
	documents  *store.Collection[domain.Document]
	feedback   *store.Collection[domain.FeedbackRequest]
	sessions   *store.Collection[domain.ChatSession]
	messages   *store.Collection[domain.ChatMessage]

	// serializes the uniqueness check and insert of users
	userMu sync.Mutex

	now     func() time.Time
	metrics *analytics.Aggregator
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository(opts ...Option) *MemoryRepository {
	o := applyOptions(opts)
	r := &MemoryRepository{
		users:      store.NewCollection[domain.User](),
		businesses: store.NewCollection(store.WithClone(domain.Business.Clone)),
		documents:  store.NewCollection(store.WithClone(domain.Document.Clone)),
		feedback:   store.NewCollection[domain.FeedbackRequest](),
		sessions:   store.NewCollection[domain.ChatSession](),
		messages:   store.NewCollection[domain.ChatMessage](),
		now:        o.now,
	}
	r.metrics = analytics.NewAggregator(r, o.now)
	return r
}

func (r *MemoryRepository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := r.users.Get(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, ok := r.users.Find(func(u domain.User) bool { return u.Username == username })
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(email)
	u, ok := r.users.Find(func(u domain.User) bool { return u.Email == email })
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) CreateUser(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
	r.userMu.Lock()
	defer r.userMu.Unlock()

	candidate := domain.NewUser(in)
	if err := domain.ValidateUser(&candidate); err != nil {
		return nil, err
	}
	if _, err := r.GetUserByUsername(ctx, candidate.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	}
	if _, err := r.GetUserByEmail(ctx, candidate.Email); err == nil {
		return nil, domain.ErrEmailTaken
	}

	u := r.users.Create(func(id int64) domain.User {
		candidate.ID = id
		return candidate
	})
	return &u, nil
}

func (r *MemoryRepository) GetBusiness(ctx context.Context, userID int64) (*domain.Business, error) {
	b, ok := r.businesses.Find(func(b domain.Business) bool { return b.UserID == userID })
	if !ok {
		return nil, domain.ErrBusinessNotFound
	}
	return &b, nil
}

func (r *MemoryRepository) GetBusinessByID(ctx context.Context, id int64) (*domain.Business, error) {
	b, ok := r.businesses.Get(id)
	if !ok {
		return nil, domain.ErrBusinessNotFound
	}
	return &b, nil
}

func (r *MemoryRepository) CreateBusiness(ctx context.Context, in domain.CreateBusinessInput) (*domain.Business, error) {
	b := r.businesses.Create(func(id int64) domain.Business {
		b := domain.NewBusiness(in)
		b.ID = id
		return b
	})
	return &b, nil
}

func (r *MemoryRepository) UpdateBusiness(ctx context.Context, id int64, patch domain.BusinessPatch) (*domain.Business, error) {
	b, ok := r.businesses.Update(id, patch.Apply)
	if !ok {
		return nil, domain.ErrBusinessNotFound
	}
	return &b, nil
}

func (r *MemoryRepository) GetDocuments(ctx context.Context, businessID int64) ([]domain.Document, error) {
	return r.documents.List(func(d domain.Document) bool { return d.BusinessID == businessID }), nil
}

func (r *MemoryRepository) GetDocument(ctx context.Context, id int64) (*domain.Document, error) {
	d, ok := r.documents.Get(id)
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return &d, nil
}

func (r *MemoryRepository) CreateDocument(ctx context.Context, in domain.CreateDocumentInput) (*domain.Document, error) {
	now := r.now()
	d := r.documents.Create(func(id int64) domain.Document {
		d := domain.NewDocument(in, now)
		d.ID = id
		return d
	})
	return &d, nil
}

func (r *MemoryRepository) UpdateDocument(ctx context.Context, id int64, patch domain.DocumentPatch) (*domain.Document, error) {
	now := r.now()
	d, ok := r.documents.Update(id, func(d *domain.Document) {
		patch.Apply(d, now)
	})
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return &d, nil
}

func (r *MemoryRepository) DeleteDocument(ctx context.Context, id int64) (bool, error) {
	return r.documents.Delete(id), nil
}

func (r *MemoryRepository) GetFeedbackRequests(ctx context.Context, businessID int64) ([]domain.FeedbackRequest, error) {
	return r.feedback.List(func(f domain.FeedbackRequest) bool { return f.BusinessID == businessID }), nil
}

func (r *MemoryRepository) CreateFeedbackRequest(ctx context.Context, in domain.CreateFeedbackInput) (*domain.FeedbackRequest, error) {
	now := r.now()
	f := r.feedback.Create(func(id int64) domain.FeedbackRequest {
		f := domain.NewFeedbackRequest(in, now)
		f.ID = id
		return f
	})
	return &f, nil
}

func (r *MemoryRepository) GetChatSessions(ctx context.Context, businessID int64) ([]domain.ChatSession, error) {
	return r.sessions.List(func(s domain.ChatSession) bool { return s.BusinessID == businessID }), nil
}

func (r *MemoryRepository) GetChatSession(ctx context.Context, id int64) (*domain.ChatSession, error) {
	s, ok := r.sessions.Get(id)
	if !ok {
		return nil, domain.ErrChatSessionNotFound
	}
	return &s, nil
}

func (r *MemoryRepository) CreateChatSession(ctx context.Context, in domain.CreateChatSessionInput) (*domain.ChatSession, error) {
	now := r.now()
	s := r.sessions.Create(func(id int64) domain.ChatSession {
		s := domain.NewChatSession(in, now)
		s.ID = id
		return s
	})
	return &s, nil
}

func (r *MemoryRepository) GetChatMessages(ctx context.Context, sessionID int64) ([]domain.ChatMessage, error) {
	return r.messages.List(func(m domain.ChatMessage) bool { return m.SessionID == sessionID }), nil
}

func (r *MemoryRepository) CreateChatMessage(ctx context.Context, in domain.CreateChatMessageInput) (*domain.ChatMessage, error) {
	m := r.messages.Create(func(id int64) domain.ChatMessage {
		m := domain.NewChatMessage(in, r.now())
		m.ID = id
		return m
	})
	return &m, nil
}

func (r *MemoryRepository) GetBusinessMetrics(ctx context.Context, businessID int64) (domain.BusinessMetrics, error) {
	return r.metrics.BusinessMetrics(ctx, businessID)
}

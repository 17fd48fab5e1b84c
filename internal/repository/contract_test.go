package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 7, 24, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type repoFactory func(t *testing.T, clock *fakeClock) Repository

// runContractTests exercises the behaviour every backend must share
func runContractTests(t *testing.T, newRepo repoFactory) {
	t.Run("user uniqueness", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t, newFakeClock())

		u, err := repo.CreateUser(ctx, domain.CreateUserInput{Username: "ann", Email: "Ann@Example.com", Password: "hash"})
		require.NoError(t, err)
		assert.Equal(t, "ann@example.com", u.Email)

		_, err = repo.CreateUser(ctx, domain.CreateUserInput{Username: "ann", Email: "other@example.com", Password: "hash"})
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)

		_, err = repo.CreateUser(ctx, domain.CreateUserInput{Username: "bob", Email: "ann@example.com", Password: "hash"})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)

		byEmail, err := repo.GetUserByEmail(ctx, "ANN@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)

		_, err = repo.GetUser(ctx, u.ID+1000)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("user requires credentials", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t, newFakeClock())

		for _, in := range []domain.CreateUserInput{
			{Email: "nobody@example.com", Password: "hash"},
			{Username: "noemail", Password: "hash"},
			{Username: "nopass", Email: "nopass@example.com"},
		} {
			_, err := repo.CreateUser(ctx, in)
			assert.Equal(t, domain.ErrCodeValidation, domain.CodeOf(err))
		}

		_, err := repo.GetUserByUsername(ctx, "noemail")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("business defaults and patch", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t, newFakeClock())
		owner := mustUser(t, repo, "owner")

		b, err := repo.CreateBusiness(ctx, domain.CreateBusinessInput{Name: "Acme", UserID: owner.ID})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultPrimaryColor, b.PrimaryColor)
		assert.Equal(t, domain.DefaultAccentColor, b.AccentColor)
		assert.Nil(t, b.Description)

		industry := "retail"
		updated, err := repo.UpdateBusiness(ctx, b.ID, domain.BusinessPatch{Industry: &industry})
		require.NoError(t, err)
		require.NotNil(t, updated.Industry)
		assert.Equal(t, "retail", *updated.Industry)
		assert.Equal(t, "Acme", updated.Name)

		byOwner, err := repo.GetBusiness(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, byOwner.ID)
		require.NotNil(t, byOwner.Industry)

		_, err = repo.UpdateBusiness(ctx, b.ID+1000, domain.BusinessPatch{Industry: &industry})
		assert.ErrorIs(t, err, domain.ErrBusinessNotFound)

		_, err = repo.GetBusiness(ctx, owner.ID+1000)
		assert.ErrorIs(t, err, domain.ErrBusinessNotFound)
	})

	t.Run("document lifecycle", func(t *testing.T) {
		ctx := context.Background()
		clock := newFakeClock()
		repo := newRepo(t, clock)
		biz := mustBusiness(t, repo, "docs")

		created, err := repo.CreateDocument(ctx, domain.CreateDocumentInput{
			Title:      "Onboarding",
			Category:   domain.DocumentCategoryHandbook,
			BusinessID: biz.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.DocumentStatusDraft, created.Status)
		assert.Nil(t, created.FileURL)
		assert.Nil(t, created.Tags)
		assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))

		approved := domain.DocumentStatusApproved
		first, err := repo.UpdateDocument(ctx, created.ID, domain.DocumentPatch{Status: &approved})
		require.NoError(t, err)
		assert.Equal(t, domain.DocumentStatusApproved, first.Status)
		assert.Equal(t, "Onboarding", first.Title)
		assert.True(t, first.UpdatedAt.After(created.UpdatedAt))

		second, err := repo.UpdateDocument(ctx, created.ID, domain.DocumentPatch{Tags: &[]string{"hr"}})
		require.NoError(t, err)
		assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
		assert.Equal(t, []string{"hr"}, second.Tags)

		clock.Advance(time.Hour)
		third, err := repo.UpdateDocument(ctx, created.ID, domain.DocumentPatch{})
		require.NoError(t, err)
		assert.True(t, third.UpdatedAt.Equal(clock.Now()))
		assert.True(t, third.CreatedAt.Equal(created.CreatedAt))

		_, err = repo.UpdateDocument(ctx, created.ID+1000, domain.DocumentPatch{})
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

		deleted, err := repo.DeleteDocument(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.DeleteDocument(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = repo.GetDocument(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

		next, err := repo.CreateDocument(ctx, domain.CreateDocumentInput{Title: "Next", Category: domain.DocumentCategoryGeneral, BusinessID: biz.ID})
		require.NoError(t, err)
		assert.Greater(t, next.ID, created.ID)
	})

	t.Run("documents scoped to business", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t, newFakeClock())
		a := mustBusiness(t, repo, "a")
		b := mustBusiness(t, repo, "b")

		for _, biz := range []*domain.Business{a, b, a} {
			_, err := repo.CreateDocument(ctx, domain.CreateDocumentInput{Title: "t", Category: domain.DocumentCategorySOP, BusinessID: biz.ID})
			require.NoError(t, err)
		}

		docs, err := repo.GetDocuments(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Less(t, docs[0].ID, docs[1].ID)

		none, err := repo.GetDocuments(ctx, b.ID+1000)
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("feedback status forced pending", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t, newFakeClock())
		biz := mustBusiness(t, repo, "fb")

		f, err := repo.CreateFeedbackRequest(ctx, domain.CreateFeedbackInput{
			Type:        domain.FeedbackTypeBug,
			Title:       "Crash on save",
			Description: "Saving a document crashes",
			Priority:    domain.FeedbackPriorityHigh,
			Status:      domain.FeedbackStatusResolved,
			BusinessID:  biz.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.FeedbackStatusPending, f.Status)

		list, err := repo.GetFeedbackRequests(ctx, biz.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, f.ID, list[0].ID)
	})

	t.Run("chat messages and metrics", func(t *testing.T) {
		ctx := context.Background()
		clock := newFakeClock()
		repo := newRepo(t, clock)
		biz := mustBusiness(t, repo, "chat")

		s, err := repo.CreateChatSession(ctx, domain.CreateChatSessionInput{AgentType: domain.AgentTypeSOP, BusinessID: biz.ID})
		require.NoError(t, err)

		roles := []domain.MessageRole{
			domain.MessageRoleUser, domain.MessageRoleAssistant,
			domain.MessageRoleUser, domain.MessageRoleAssistant,
			domain.MessageRoleUser,
		}
		for i, role := range roles {
			_, err := repo.CreateChatMessage(ctx, domain.CreateChatMessageInput{SessionID: s.ID, Role: role, Content: string(rune('a' + i))})
			require.NoError(t, err)
			clock.Advance(time.Second)
		}

		msgs, err := repo.GetChatMessages(ctx, s.ID)
		require.NoError(t, err)
		require.Len(t, msgs, 5)
		for i := 1; i < len(msgs); i++ {
			assert.Less(t, msgs[i-1].ID, msgs[i].ID)
			assert.False(t, msgs[i].CreatedAt.Before(msgs[i-1].CreatedAt))
		}

		got, err := repo.GetChatSession(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.AgentTypeSOP, got.AgentType)

		_, err = repo.GetChatSession(ctx, s.ID+1000)
		assert.ErrorIs(t, err, domain.ErrChatSessionNotFound)

		m, err := repo.GetBusinessMetrics(ctx, biz.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, m.AIInteractions)
		assert.Equal(t, 0, m.TotalDocuments)
	})

	t.Run("metrics recent updates", func(t *testing.T) {
		ctx := context.Background()
		clock := newFakeClock()
		repo := newRepo(t, clock)
		biz := mustBusiness(t, repo, "metrics")

		for range 2 {
			_, err := repo.CreateDocument(ctx, domain.CreateDocumentInput{Title: "old", Category: domain.DocumentCategoryGeneral, BusinessID: biz.ID})
			require.NoError(t, err)
		}
		clock.Advance(35 * 24 * time.Hour)
		for range 2 {
			_, err := repo.CreateDocument(ctx, domain.CreateDocumentInput{Title: "new", Category: domain.DocumentCategoryGeneral, BusinessID: biz.ID})
			require.NoError(t, err)
		}

		m, err := repo.GetBusinessMetrics(ctx, biz.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, m.TotalDocuments)
		assert.Equal(t, 2, m.RecentUpdates)

		empty, err := repo.GetBusinessMetrics(ctx, biz.ID+1000)
		require.NoError(t, err)
		assert.Equal(t, domain.BusinessMetrics{}, empty)
	})

	t.Run("create then get round trips", func(t *testing.T) {
		ctx := context.Background()
		clock := newFakeClock()
		clock.Advance(1234567 * time.Nanosecond)
		repo := newRepo(t, clock)

		user, err := repo.CreateUser(ctx, domain.CreateUserInput{Username: "rt", Email: "rt@example.com", Password: "hash"})
		require.NoError(t, err)
		gotUser, err := repo.GetUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, *user, *gotUser)

		full, err := repo.CreateBusiness(ctx, domain.CreateBusinessInput{
			Name:         "Round Trip Co",
			Description:  "Bakery",
			Industry:     "food",
			LogoURL:      "https://cdn.example.com/logo.png",
			PrimaryColor: "#101010",
			AccentColor:  "#202020",
			UserID:       user.ID,
		})
		require.NoError(t, err)
		gotBiz, err := repo.GetBusinessByID(ctx, full.ID)
		require.NoError(t, err)
		assert.Equal(t, *full, *gotBiz)

		sparse := mustBusiness(t, repo, "sparse")
		gotSparse, err := repo.GetBusinessByID(ctx, sparse.ID)
		require.NoError(t, err)
		assert.Equal(t, *sparse, *gotSparse)
		assert.Nil(t, gotSparse.LogoURL)

		for _, in := range []domain.CreateDocumentInput{
			{Title: "Tagged", Description: "with extras", Category: domain.DocumentCategorySOP, Status: domain.DocumentStatusReview, FileURL: "https://files.example.com/sop.pdf", Tags: []string{"ops", "daily"}, BusinessID: full.ID},
			{Title: "Bare", Category: domain.DocumentCategoryGeneral, BusinessID: full.ID},
		} {
			doc, err := repo.CreateDocument(ctx, in)
			require.NoError(t, err)
			got, err := repo.GetDocument(ctx, doc.ID)
			require.NoError(t, err)
			sameInstant(t, doc.CreatedAt, &got.CreatedAt)
			sameInstant(t, doc.UpdatedAt, &got.UpdatedAt)
			assert.Equal(t, *doc, *got)
		}

		fb, err := repo.CreateFeedbackRequest(ctx, domain.CreateFeedbackInput{
			Type:        domain.FeedbackTypeFeature,
			Title:       "Export",
			Description: "CSV export of documents",
			Priority:    domain.FeedbackPriorityLow,
			BusinessID:  full.ID,
		})
		require.NoError(t, err)
		fbs, err := repo.GetFeedbackRequests(ctx, full.ID)
		require.NoError(t, err)
		require.Len(t, fbs, 1)
		sameInstant(t, fb.CreatedAt, &fbs[0].CreatedAt)
		assert.Equal(t, *fb, fbs[0])

		session, err := repo.CreateChatSession(ctx, domain.CreateChatSessionInput{AgentType: domain.AgentTypeSocial, BusinessID: full.ID})
		require.NoError(t, err)
		gotSession, err := repo.GetChatSession(ctx, session.ID)
		require.NoError(t, err)
		sameInstant(t, session.CreatedAt, &gotSession.CreatedAt)
		assert.Equal(t, *session, *gotSession)

		msg, err := repo.CreateChatMessage(ctx, domain.CreateChatMessageInput{SessionID: session.ID, Role: domain.MessageRoleUser, Content: "Plan a spring promo"})
		require.NoError(t, err)
		msgs, err := repo.GetChatMessages(ctx, session.ID)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		sameInstant(t, msg.CreatedAt, &msgs[0].CreatedAt)
		assert.Equal(t, *msg, msgs[0])
	})
}

// sameInstant asserts got is the same instant as want, then aligns its
// location so whole-struct comparisons ignore how the backend decoded it.
func sameInstant(t *testing.T, want time.Time, got *time.Time) {
	t.Helper()
	assert.True(t, want.Equal(*got), "want %s, got %s", want, *got)
	*got = want
}

func mustUser(t *testing.T, repo Repository, name string) *domain.User {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), domain.CreateUserInput{
		Username: name,
		Email:    name + "@example.com",
		Password: "hash",
	})
	require.NoError(t, err)
	return u
}

func mustBusiness(t *testing.T, repo Repository, name string) *domain.Business {
	t.Helper()
	owner := mustUser(t, repo, name)
	b, err := repo.CreateBusiness(context.Background(), domain.CreateBusinessInput{Name: name, UserID: owner.ID})
	require.NoError(t, err)
	return b
}

package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Contract(t *testing.T) {
	runContractTests(t, func(t *testing.T, clock *fakeClock) Repository {
		return NewMemoryRepository(WithClock(clock.Now))
	})
}

func TestMemoryRepository_FirstIDsStartAtOne(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	u := mustUser(t, repo, "first")
	b, err := repo.CreateBusiness(ctx, domain.CreateBusinessInput{Name: "First", UserID: u.ID})
	require.NoError(t, err)

	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, int64(1), b.ID)
}

func TestMemoryRepository_ReturnedDocumentsAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	biz := mustBusiness(t, repo, "copy")

	d, err := repo.CreateDocument(ctx, domain.CreateDocumentInput{
		Title:      "Policy",
		Category:   domain.DocumentCategoryPolicy,
		Tags:       []string{"legal"},
		BusinessID: biz.ID,
	})
	require.NoError(t, err)

	d.Tags[0] = "mutated"
	d.Title = "mutated"

	stored, err := repo.GetDocument(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Policy", stored.Title)
	assert.Equal(t, []string{"legal"}, stored.Tags)
}

func TestMemoryRepository_ConcurrentUserCreationKeepsUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.CreateUser(ctx, domain.CreateUserInput{Username: "dup", Email: "dup@example.com", Password: "x"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrUsernameTaken)
		}
	}
	assert.Equal(t, 1, succeeded)
}

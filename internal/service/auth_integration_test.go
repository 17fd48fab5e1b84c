//go:build integration

package service

import (
	"context"
	"testing"
	"time"

	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/smarterworkco/GPT-UI/internal/repository"
	"github.com/smarterworkco/GPT-UI/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Integration_RegisterLogin(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := repository.NewPostgresRepository(pool)
	svc := NewAuthService(repo, NewTokenIssuer("integration-secret", time.Hour))
	svc.cost = bcrypt.MinCost

	registered, err := svc.Register(ctx, RegisterInput{
		Username: "erin",
		Email:    "Erin@Example.com",
		Password: "password123",
		Industry: "retail",
	})
	require.NoError(t, err)
	assert.Equal(t, "erin@example.com", registered.User.Email)
	assert.Equal(t, "erin's Business", registered.Business.Name)

	stored, err := repo.GetBusiness(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Business.ID, stored.ID)

	loggedIn, err := svc.Login(ctx, "erin@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	userID, err := svc.ValidateToken(ctx, loggedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, userID)

	_, err = svc.Register(ctx, RegisterInput{Username: "erin", Email: "other@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	_, err = svc.Login(ctx, "erin", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

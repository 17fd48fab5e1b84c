package service

import (
	"context"
	"testing"
	"time"

	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/smarterworkco/GPT-UI/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAccountRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAccountRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAccountRepository) CreateUser(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAccountRepository) GetBusiness(ctx context.Context, userID int64) (*domain.Business, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *MockAccountRepository) CreateBusiness(ctx context.Context, in domain.CreateBusinessInput) (*domain.Business, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func newTestAuthService(repo AccountRepository) *AuthService {
	svc := NewAuthService(repo, NewTokenIssuer("test-secret", time.Hour))
	svc.cost = bcrypt.MinCost
	return svc
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	svc := newTestAuthService(repo)

	res, err := svc.Register(ctx, RegisterInput{
		Username:     "alice",
		Email:        "Alice@Example.com",
		Password:     "hunter22",
		BusinessName: "Alice Bakery",
		Industry:     "food",
	})
	require.NoError(t, err)
	require.NotNil(t, res.User)
	require.NotNil(t, res.Business)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "alice@example.com", res.User.Email)
	assert.NotEqual(t, "hunter22", res.User.Password)
	assert.Equal(t, "Alice Bakery", res.Business.Name)
	assert.Equal(t, res.User.ID, res.Business.UserID)

	byName, err := svc.Login(ctx, "alice", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, byName.User.ID)
	require.NotNil(t, byName.Business)
	assert.Equal(t, res.Business.ID, byName.Business.ID)

	byEmail, err := svc.Login(ctx, "ALICE@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, byEmail.User.ID)

	userID, err := svc.ValidateToken(ctx, byEmail.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)
}

func TestAuthService_RegisterDefaultsBusinessName(t *testing.T) {
	svc := newTestAuthService(repository.NewMemoryRepository())

	res, err := svc.Register(context.Background(), RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "pw",
	})
	require.NoError(t, err)
	assert.Equal(t, "bob's Business", res.Business.Name)
	assert.Equal(t, domain.DefaultPrimaryColor, res.Business.PrimaryColor)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(repository.NewMemoryRepository())

	_, err := svc.Register(ctx, RegisterInput{Username: "carol", Email: "carol@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "carol", Email: "other@example.com", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	_, err = svc.Register(ctx, RegisterInput{Username: "carol2", Email: "CAROL@example.com", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAuthService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(repository.NewMemoryRepository())

	_, err := svc.Register(ctx, RegisterInput{Username: "dave", Email: "dave@example.com", Password: "right"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "dave", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "right")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "right")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_LoginWithoutBusiness(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAccountRepository)
	svc := newTestAuthService(repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: 7, Username: "eve", Email: "eve@example.com", Password: string(hash)}

	repo.On("GetUserByUsername", ctx, "eve").Return(user, nil)
	repo.On("GetBusiness", ctx, int64(7)).Return(nil, domain.ErrBusinessNotFound)

	res, err := svc.Login(ctx, "eve", "pw")
	require.NoError(t, err)
	assert.Nil(t, res.Business)
	assert.NotEmpty(t, res.Token)
	repo.AssertExpectations(t)
}

func TestAuthService_ValidateTokenUnknownUser(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAccountRepository)
	svc := newTestAuthService(repo)

	token, err := svc.tokens.Issue(99)
	require.NoError(t, err)

	repo.On("GetUser", ctx, int64(99)).Return(nil, domain.ErrUserNotFound)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthService_ValidateTokenGarbage(t *testing.T) {
	svc := newTestAuthService(new(MockAccountRepository))

	_, err := svc.ValidateToken(context.Background(), "garbage")
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeUnauthorized, domain.CodeOf(err))
}

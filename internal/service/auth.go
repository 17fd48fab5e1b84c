package service

import (
	"context"
	"errors"
	"strings"

	"github.com/smarterworkco/GPT-UI/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// AccountRepository is the slice of the repository needed for accounts
type AccountRepository interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, in domain.CreateUserInput) (*domain.User, error)
	GetBusiness(ctx context.Context, userID int64) (*domain.Business, error)
	CreateBusiness(ctx context.Context, in domain.CreateBusinessInput) (*domain.Business, error)
}

type RegisterInput struct {
	Username     string
	Email        string
	Password     string
	BusinessName string
	Industry     string
}

// AuthResult is returned by Register and Login
type AuthResult struct {
	Token    string           `json:"token"`
	User     *domain.User     `json:"user"`
	Business *domain.Business `json:"business"`
}

type AuthService struct {
	repo   AccountRepository
	tokens *TokenIssuer
	cost   int
}

func NewAuthService(repo AccountRepository, tokens *TokenIssuer) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		cost:   bcrypt.DefaultCost,
	}
}

// HashPassword returns the bcrypt hash stored for a plaintext password
func (s *AuthService) HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to hash password", err)
	}
	return string(hash), nil
}

// Register creates a user and the business it owns, then issues a token
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, domain.CreateUserInput{
		Username: strings.TrimSpace(in.Username),
		Email:    strings.TrimSpace(in.Email),
		Password: hash,
	})
	if err != nil {
		return nil, err
	}

	businessName := in.BusinessName
	if businessName == "" {
		businessName = user.Username + "'s Business"
	}
	business, err := s.repo.CreateBusiness(ctx, domain.CreateBusinessInput{
		Name:     businessName,
		Industry: in.Industry,
		UserID:   user.ID,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: user, Business: business}, nil
}

// Login accepts a username or an email address as identifier
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	identifier = strings.TrimSpace(identifier)

	var user *domain.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.repo.GetUserByEmail(ctx, identifier)
	} else {
		user, err = s.repo.GetUserByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	business, err := s.repo.GetBusiness(ctx, user.ID)
	if err != nil && !errors.Is(err, domain.ErrBusinessNotFound) {
		return nil, err
	}

	return &AuthResult{Token: token, User: user, Business: business}, nil
}

// ValidateToken resolves a bearer token to an existing user id
func (s *AuthService) ValidateToken(ctx context.Context, token string) (int64, error) {
	userID, err := s.tokens.Parse(token)
	if err != nil {
		return 0, err
	}
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return 0, domain.ErrInvalidToken
		}
		return 0, err
	}
	return userID, nil
}

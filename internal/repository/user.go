package repository

import (
	"context"
	"strings"

	"github.com/smarterworkco/GPT-UI/internal/domain"
)

const userColumns = `id, username, email, password`

func (r *PostgresRepository) getUserWhere(ctx context.Context, where string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where,
		arg,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Password)
	if err != nil {
		return nil, wrapQuery("get user", notFound(err, domain.ErrUserNotFound))
	}
	return &u, nil
}

func (r *PostgresRepository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return r.getUserWhere(ctx, "id = $1", id)
}

func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getUserWhere(ctx, "username = $1", username)
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUserWhere(ctx, "email = $1", strings.ToLower(email))
}

func (r *PostgresRepository) CreateUser(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
	u := domain.NewUser(in)
	if err := domain.ValidateUser(&u); err != nil {
		return nil, err
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, email, password) VALUES ($1, $2, $3) RETURNING id`,
		u.Username, u.Email, u.Password,
	).Scan(&u.ID)
	if err != nil {
		if constraint, ok := uniqueConstraint(err); ok {
			if constraint == "users_email_key" {
				return nil, domain.ErrEmailTaken
			}
			return nil, domain.ErrUsernameTaken
		}
		return nil, wrapQuery("create user", err)
	}
	return &u, nil
}

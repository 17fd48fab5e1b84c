package domain

import "strings"

// User is an account owner. Password holds the bcrypt hash and is never serialized.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

// CreateUserInput carries the fields accepted when creating a user
type CreateUserInput struct {
	Username string
	Email    string
	Password string
}

// NewUser builds a User from input. The id is assigned by the store.
func NewUser(in CreateUserInput) User {
	return User{
		Username: in.Username,
		Email:    strings.ToLower(in.Email),
		Password: in.Password,
	}
}

// ValidateUser reports the first missing required field of u
func ValidateUser(u *User) error {
	if u == nil {
		return NewDomainError(ErrCodeValidation, "user cannot be nil")
	}

	if u.Username == "" {
		return NewDomainError(ErrCodeValidation, "user username is required")
	}

	if u.Email == "" {
		return NewDomainError(ErrCodeValidation, "user email is required")
	}

	if u.Password == "" {
		return NewDomainError(ErrCodeValidation, "user password is required")
	}

	return nil
}

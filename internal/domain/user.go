package domain

import (
	"context"
	"errors"
)

type UserModel struct {
	ID         string `json:"id"`
	Username   string `json:"username" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password,omitempty" validate:"required"`
	LoginRetry int    `json:"-"`
	LastLogin  int64  `json:"-"`
}

// ErrNoSuchUser failed to validate the credential
var ErrNoSuchUser = errors.New("No such user or password is incorrect")

// ErrDuplicatedUser unique key constraint violation
var ErrDuplicatedUser = errors.New("Username or email is already registered")

// ErrUserTooManyRetry login attempts exceeded the configured maximum
var ErrUserTooManyRetry = errors.New("Too many login attempts")

type UserUseCase interface {
	SignUp(ctx context.Context, post *UserModel) (*UserModel, error)
	Exists(ctx context.Context, post *UserModel) (bool, error)
}

type UserRepository interface {
	FindByCredential(ctx context.Context, post *UserModel) (*UserModel, error)
	UpdateUser(ctx context.Context, post *UserModel) error
	SaveUser(ctx context.Context, post *UserModel) error
}

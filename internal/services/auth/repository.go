package auth

import (
	"context"
	"errors"
)

// ErrDuplicate is returned by a repository when the email is already taken.
var ErrDuplicate = errors.New("user with this email already exists")

// ErrUserNotFound is returned by a repository when no user matches.
var ErrUserNotFound = errors.New("user not found")

// UsersRepo defines the interface for user repository operations
type UsersRepo interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
}

package user

import (
	c "authgate/internal/core/domain/common"
	"context"
	"time"
)

type CreateUserInput struct {
	Name         Name
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	SetPassword(ctx context.Context, id ID, password PasswordHash) error
}

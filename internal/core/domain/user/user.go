package user

import (
	c "authgate/internal/core/domain/common"
	e "authgate/internal/core/domain/errors"
	"fmt"
	"time"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type Name string

type User struct {
	ID           ID
	Name         Name
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

func (u *User) Validate() error {
	if u.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for user %d", u.ID))
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %d", u.ID))
	}
	return nil
}

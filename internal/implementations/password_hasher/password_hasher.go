package passwordhasher

import (
	"authgate/internal/core/domain/user"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxCost bounds the configurable cost; higher values make a single
// login take seconds.
const MaxCost = 14

type Bcrypt struct {
	cost int
}

func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > MaxCost {
		panic(fmt.Sprintf("bcrypt cost must be in [%d, %d], got %d", bcrypt.MinCost, MaxCost, cost))
	}
	return &Bcrypt{cost: cost}
}

func (h *Bcrypt) HashPassword(password user.RawPassword) (hash user.PasswordHash, err error) {
	bcryptHash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return hash, err
	}
	return user.PasswordHash(bcryptHash), nil
}

func (h *Bcrypt) ValidatePassword(password user.RawPassword, hash user.PasswordHash) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

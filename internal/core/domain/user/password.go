package user

import (
	c "authgate/internal/core/domain/common"
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// bcrypt ignores everything after the first 72 bytes.
const maxPasswordBytes = 72

var (
	hasLetter   = regexp.MustCompile(`\pL`)
	hasDigit    = regexp.MustCompile(`[0-9]`)
	namePattern = regexp.MustCompile(`^\pL+(?:[ '\-]\pL+)*$`)
)

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}

// CheckPasswordStrength returns an error wrapping ErrWeakPassword when the
// password does not satisfy the policy.
func CheckPasswordStrength(password RawPassword) error {
	err := validation.Validate(
		string(password),
		validation.Required,
		validation.Length(8, 0),
		validation.By(maxBytes(maxPasswordBytes)),
		validation.Match(hasLetter).Error("must contain a letter"),
		validation.Match(hasDigit).Error("must contain a digit"),
	)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrWeakPassword, err)
	}
	return nil
}

func CheckName(name Name) error {
	err := validation.Validate(
		string(name),
		validation.Required,
		validation.Length(1, 128),
		validation.Match(namePattern).Error("must contain letters only"),
	)
	if err != nil {
		return fmt.Errorf("%w: name %s", ErrInvalidInput, err)
	}
	return nil
}

func CheckEmail(email c.Email) error {
	err := validation.Validate(
		string(email),
		validation.Required,
		is.Email,
		validation.Length(0, 512),
	)
	if err != nil {
		return fmt.Errorf("%w: email %s", ErrInvalidInput, err)
	}
	return nil
}

func maxBytes(max int) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if len(s) > max {
			return fmt.Errorf("must be no more than %d bytes long", max)
		}
		return nil
	}
}

package user

import (
	c "authgate/internal/core/domain/common"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckPasswordStrength(t *testing.T) {
	cases := []struct {
		id       string
		password string
		isValid  bool
	}{
		{id: "letters-and-digits", password: "password1", isValid: true},
		{id: "unicode-letters", password: "пароль123", isValid: true},
		{id: "exactly-72-bytes", password: strings.Repeat("a", 71) + "1", isValid: true},
		{id: "empty", password: "", isValid: false},
		{id: "too-short", password: "abc123", isValid: false},
		{id: "no-digit", password: "password", isValid: false},
		{id: "no-letter", password: "12345678", isValid: false},
		{id: "too-long", password: strings.Repeat("a", 72) + "1", isValid: false},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			err := CheckPasswordStrength(RawPassword(testcase.password))
			if testcase.isValid {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrWeakPassword)
			}
		})
	}
}

func TestCheckName(t *testing.T) {
	cases := []struct {
		name    string
		isValid bool
	}{
		{name: "John", isValid: true},
		{name: "Anna Maria", isValid: true},
		{name: "Jean-Luc", isValid: true},
		{name: "Иван", isValid: true},
		{name: "", isValid: false},
		{name: "John1", isValid: false},
		{name: " John", isValid: false},
		{name: "John  Smith", isValid: false},
		{name: strings.Repeat("a", 129), isValid: false},
	}
	for _, testcase := range cases {
		t.Run(testcase.name, func(t *testing.T) {
			err := CheckName(Name(testcase.name))
			if testcase.isValid {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrInvalidInput)
			}
		})
	}
}

func TestCheckEmail(t *testing.T) {
	cases := []struct {
		email   string
		isValid bool
	}{
		{email: "test@test.test", isValid: true},
		{email: "real@x.com", isValid: true},
		{email: "", isValid: false},
		{email: "test", isValid: false},
		{email: "test@", isValid: false},
		{email: "@test.test", isValid: false},
	}
	for _, testcase := range cases {
		t.Run(testcase.email, func(t *testing.T) {
			err := CheckEmail(c.NewEmail(testcase.email))
			if testcase.isValid {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrInvalidInput)
			}
		})
	}
}

func TestSensitiveValuesAreMasked(t *testing.T) {
	require.Equal(t, "***", RawPassword("secret1").String())
	require.Equal(t, "***", PasswordHash("hash").String())
	require.Equal(t, "***", RestoreToken("token").String())
	require.Equal(t, "***", SessionToken("token").String())
}

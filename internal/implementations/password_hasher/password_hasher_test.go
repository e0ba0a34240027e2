package passwordhasher

import (
	"authgate/internal/core/domain/user"
	"fmt"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordValid(t *testing.T) {
	type testcase struct {
		ix       int
		cost     int
		password string
	}
	cases := []testcase{
		{ix: 1, cost: 5, password: "test"},
		{ix: 2, cost: 5, password: ""},
		{ix: 3, cost: 7, password: "password password"},
		{ix: 4, cost: 10, password: "   test   "},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.ix), func(t *testing.T) {
			h := NewBcrypt(c.cost)
			hash, err := h.HashPassword(user.RawPassword(c.password))
			if hash == user.PasswordHash("") {
				t.Fatal("hash must not be empty")
			}
			if err != nil {
				t.Fatalf("could not hash password: %v, %v", c.password, err)
			}
			if !h.ValidatePassword(user.RawPassword(c.password), hash) {
				t.Fatalf("password check failed: %v", c.password)
			}
		})
	}
}

func TestPasswordInvalid(t *testing.T) {
	type testcase struct {
		ix              int
		cost            int
		passwordToHash  string
		passwordToCheck string
	}
	cases := []testcase{
		{ix: 1, cost: 5, passwordToHash: "test", passwordToCheck: "test "},
		{ix: 2, cost: 5, passwordToHash: "", passwordToCheck: " "},
		{ix: 3, cost: 10, passwordToHash: "password password", passwordToCheck: " password password"},
		{ix: 4, cost: 8, passwordToHash: "   test   ", passwordToCheck: "   tost   "},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.ix), func(t *testing.T) {
			h := NewBcrypt(c.cost)
			hash, err := h.HashPassword(user.RawPassword(c.passwordToHash))
			if hash == user.PasswordHash("") {
				t.Fatal("hash must not be empty")
			}
			if err != nil {
				t.Fatalf("could not hash password: %v, %v", c.passwordToHash, err)
			}
			if h.ValidatePassword(user.RawPassword(c.passwordToCheck), hash) {
				t.Fatalf("password check passed: %v, %v", c.passwordToHash, c.passwordToCheck)
			}
		})
	}
}

func TestHashIsNotRawPassword(t *testing.T) {
	hash, err := NewBcrypt(bcrypt.MinCost).HashPassword("test-password-1")
	if err != nil {
		t.Fatal(err)
	}
	if string(hash) == "test-password-1" {
		t.Fatal("hash must differ from raw password")
	}
}

func TestCostOutOfBounds(t *testing.T) {
	for _, cost := range []int{0, bcrypt.MinCost - 1, MaxCost + 1} {
		t.Run(fmt.Sprint(cost), func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("cost %d must be rejected", cost)
				}
			}()
			NewBcrypt(cost)
		})
	}
}

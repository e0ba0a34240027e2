package user

import "time"

type SessionToken string

func (t SessionToken) String() string {
	return "***"
}

type SessionClaims struct {
	UserID    ID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type SessionTokenIssuer interface {
	Issue(u User) (SessionToken, error)
	Verify(token SessionToken) (SessionClaims, error)
}

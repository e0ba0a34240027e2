package user

import (
	c "authgate/internal/core/domain/common"
	"context"
	"time"
)

type RestoreToken string

func (t RestoreToken) String() string {
	return "***"
}

// RestoreTokenID identifies one issued restore token; the consumed ledger is
// keyed by it.
type RestoreTokenID string

type RestoreClaims struct {
	ID          RestoreTokenID
	UserID      ID
	Fingerprint string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

type RestoreTokenIssuer interface {
	Issue(u User) (RestoreToken, RestoreClaims, error)
	// Verify returns ErrInvalidRestoreTokenSignature or ErrRestoreTokenExpired
	// for any token that must not be trusted.
	Verify(token RestoreToken) (RestoreClaims, error)
	Fingerprint(hash PasswordHash) string
}

type RestoreTokenLedger interface {
	// Consume atomically marks the token as used. It returns false if the
	// token has already been consumed.
	Consume(ctx context.Context, claims RestoreClaims) (bool, error)
	Release(ctx context.Context, claims RestoreClaims) error
}

type RestoreLink struct {
	Email     c.Email
	Token     RestoreToken
	ExpiresAt time.Time
}

type RestoreLinkDispatcher interface {
	DispatchRestoreLink(ctx context.Context, link RestoreLink) error
}

type RestoreLinkSender interface {
	SendRestoreLink(ctx context.Context, link RestoreLink) error
}

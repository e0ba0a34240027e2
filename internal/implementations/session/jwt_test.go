package session

import (
	"authgate/internal/core/domain/user"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const SECRET = "session-secret-session-secret-session-secret"

func TestSessionTokenRoundTrip(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	issuer := NewJWT(SECRET, time.Hour, func() time.Time { return now })

	token, err := issuer.Issue(user.User{ID: 42})
	require.NoError(t, err)
	claims, err := issuer.Verify(token)

	require.NoError(t, err)
	require.Equal(t, user.ID(42), claims.UserID)
	require.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	require.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestInvalidSessionTokens(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	issuer := NewJWT(SECRET, time.Hour, func() time.Time { return now })
	token, err := issuer.Issue(user.User{ID: 42})
	require.NoError(t, err)

	later := NewJWT(SECRET, time.Hour, func() time.Time { return now.Add(time.Hour) })
	other := NewJWT("other-secret-other-secret-other-secret", time.Hour, func() time.Time { return now })

	cases := []struct {
		id     string
		issuer *JWT
		token  user.SessionToken
	}{
		{id: "expired", issuer: later, token: token},
		{id: "other secret", issuer: other, token: token},
		{id: "garbage", issuer: issuer, token: "garbage"},
		{id: "empty", issuer: issuer, token: ""},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			_, err := testcase.issuer.Verify(testcase.token)
			require.ErrorIs(t, err, user.ErrInvalidSessionToken)
		})
	}
}

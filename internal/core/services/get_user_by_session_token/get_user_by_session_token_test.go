package getuserbysessiontoken

import (
	"authgate/internal/core/domain/user"
	"authgate/internal/core/services/auth"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUserResolvedFromSessionToken(t *testing.T) {
	issuer := user.NewFakeSessionTokenIssuer(time.Now)
	repo := user.NewFakeUserRepository()
	u, err := repo.Create(context.Background(), user.CreateUserInput{
		Name:         "Test",
		Email:        "test@test.test",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)
	token, err := issuer.Issue(u)
	require.NoError(t, err)

	service := auth.WithAuthentication(issuer, repo, New())
	result, err := service.Run(auth.WithToken(context.Background(), token), Input{})

	require.NoError(t, err)
	require.Equal(t, u, result.User)
}

func TestUnknownSessionToken(t *testing.T) {
	service := auth.WithAuthentication(
		user.NewFakeSessionTokenIssuer(time.Now),
		user.NewFakeUserRepository(),
		New(),
	)

	_, err := service.Run(auth.WithToken(context.Background(), "unknown"), Input{})

	require.ErrorIs(t, err, user.ErrUnauthenticated)
}

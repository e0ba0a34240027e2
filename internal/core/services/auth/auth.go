package auth

import (
	e "authgate/internal/core/domain/errors"
	"authgate/internal/core/domain/user"
	"authgate/internal/core/services"
	"context"
	"errors"
)

type contextAuthToken string

const CONTEXT_AUTH_TOKEN_KEY = contextAuthToken("authToken")

// WithToken puts the session token carried by a request into ctx.
func WithToken(ctx context.Context, token user.SessionToken) context.Context {
	return context.WithValue(ctx, CONTEXT_AUTH_TOKEN_KEY, token)
}

type Input interface {
	WithAuthenticatedUser(u user.User) Input
}

type service[T Input, S any] struct {
	sessionTokenIssuer user.SessionTokenIssuer
	userRepository     user.UserRepository
	inner              services.Service[T, S]
}

func WithAuthentication[T Input, S any](
	sessionTokenIssuer user.SessionTokenIssuer,
	userRepository user.UserRepository,
	inner services.Service[T, S],
) services.Service[T, S] {
	if sessionTokenIssuer == nil {
		panic(e.NewNilArgumentError("sessionTokenIssuer"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &service[T, S]{
		sessionTokenIssuer: sessionTokenIssuer,
		userRepository:     userRepository,
		inner:              inner,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	authToken, ok := ctx.Value(CONTEXT_AUTH_TOKEN_KEY).(user.SessionToken)
	if !ok || authToken == "" {
		return result, user.ErrUnauthenticated
	}
	claims, err := s.sessionTokenIssuer.Verify(authToken)
	if err != nil {
		return result, user.ErrUnauthenticated
	}
	u, err := s.userRepository.GetByID(ctx, claims.UserID)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, user.ErrUnauthenticated
	}
	if err != nil {
		return result, err
	}
	return s.inner.Run(ctx, input.WithAuthenticatedUser(u).(T))
}

package getuserbysessiontoken

import (
	"authgate/internal/core/domain/user"
	"authgate/internal/core/services"
	"authgate/internal/core/services/auth"
	"context"
)

type Input struct {
	User user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	User user.User
}

type service struct{}

// New returns the service resolving the current user. It must be wrapped
// with auth.WithAuthentication, which does the actual lookup.
func New() services.Service[Input, Result] {
	return &service{}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	return Result{User: input.User}, nil
}

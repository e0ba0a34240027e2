package logout

import (
	c "authgate/internal/core/domain/common"
	e "authgate/internal/core/domain/errors"
	"authgate/internal/core/domain/logging"
	"authgate/internal/core/domain/user"
	"authgate/internal/core/services"
	"context"
)

type Input struct {
	Token c.Optional[user.SessionToken]
}

type Result struct{}

type service struct {
	log                logging.Logger
	sessionTokenIssuer user.SessionTokenIssuer
}

// New returns the log out service. Session tokens are not stored on the
// server, so logging out only means the caller drops the cookie.
func New(
	log logging.Logger,
	sessionTokenIssuer user.SessionTokenIssuer,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sessionTokenIssuer == nil {
		panic(e.NewNilArgumentError("sessionTokenIssuer"))
	}
	return &service{
		log:                log,
		sessionTokenIssuer: sessionTokenIssuer,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if !input.Token.IsPresent {
		s.log.Debug(ctx, "Log out requested without session token.")
		return result, nil
	}
	claims, err := s.sessionTokenIssuer.Verify(input.Token.Value)
	if err != nil {
		s.log.Debug(ctx, "Log out requested with invalid session token.", logging.Entry("err", err))
		return result, nil
	}
	s.log.Info(ctx, "User logged out.", logging.Entry("userId", claims.UserID))
	return result, nil
}

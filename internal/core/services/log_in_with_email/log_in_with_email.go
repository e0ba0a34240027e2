package loginwithemail

import (
	c "authgate/internal/core/domain/common"
	e "authgate/internal/core/domain/errors"
	"authgate/internal/core/domain/logging"
	"authgate/internal/core/domain/user"
	"authgate/internal/core/services"
	"context"
	"errors"
)

type Input struct {
	Email    c.Email
	Password user.RawPassword
	// CurrentToken is the session token the request already carries, if any.
	CurrentToken c.Optional[user.SessionToken]
}

type Result struct {
	User  user.User
	Token user.SessionToken
}

type service struct {
	log                logging.Logger
	userRepository     user.UserRepository
	passwordHasher     user.PasswordHasher
	sessionTokenIssuer user.SessionTokenIssuer
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
	sessionTokenIssuer user.SessionTokenIssuer,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if sessionTokenIssuer == nil {
		panic(e.NewNilArgumentError("sessionTokenIssuer"))
	}
	return &service{
		log:                log,
		userRepository:     userRepository,
		passwordHasher:     passwordHasher,
		sessionTokenIssuer: sessionTokenIssuer,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.CurrentToken.IsPresent {
		claims, err := s.sessionTokenIssuer.Verify(input.CurrentToken.Value)
		if err == nil {
			s.log.Info(ctx, "User is already authenticated.", logging.Entry("userId", claims.UserID))
			return result, user.ErrAlreadyAuthenticated
		}
	}

	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		// Minimize risk for timing attacks
		s.passwordHasher.HashPassword(input.Password)
		return result, user.ErrInvalidCredentials
	}
	if err != nil {
		s.log.Error(ctx, "Could not get user by email.", logging.Entry("err", err))
		return result, err
	}
	if !s.passwordHasher.ValidatePassword(input.Password, u.PasswordHash) {
		return result, user.ErrInvalidCredentials
	}

	sessionToken, err := s.sessionTokenIssuer.Issue(u)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create session token for user.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"User successfully authenticated, session token created.",
		logging.Entry("userId", u.ID),
	)
	return Result{User: u, Token: sessionToken}, nil
}

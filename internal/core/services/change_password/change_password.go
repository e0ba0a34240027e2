package changepassword

import (
	e "authgate/internal/core/domain/errors"
	"authgate/internal/core/domain/logging"
	"authgate/internal/core/domain/user"
	"authgate/internal/core/services"
	"authgate/internal/core/services/auth"
	"context"
)

type Input struct {
	CurrentPassword user.RawPassword
	NewPassword     user.RawPassword
	User            user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct{}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	passwordHasher user.PasswordHasher
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
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
	return &service{
		log:            log,
		passwordHasher: passwordHasher,
		userRepository: userRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := user.CheckPasswordStrength(input.NewPassword); err != nil {
		return result, err
	}
	if !s.passwordHasher.ValidatePassword(input.CurrentPassword, input.User.PasswordHash) {
		return result, user.ErrInvalidCredentials
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	// Outstanding restore tokens are bound to the old hash and stop verifying here.
	if err := s.userRepository.SetPassword(ctx, input.User.ID, newPasswordHash); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userId", input.User.ID))
		return result, err
	}

	s.log.Info(ctx, "Password changed.", logging.Entry("userId", input.User.ID))
	return Result{}, nil
}

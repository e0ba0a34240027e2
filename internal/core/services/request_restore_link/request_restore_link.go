package requestrestorelink

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
	Email c.Email
}

type Result struct {
	// Token is present only when the email belongs to a registered user.
	// It must never be exposed outside of test mode.
	Token c.Optional[user.RestoreToken]
}

// Signed for unknown emails so both branches cost the same.
var placeholderUser = user.User{PasswordHash: user.PasswordHash("placeholder")}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	tokenIssuer    user.RestoreTokenIssuer
	dispatcher     user.RestoreLinkDispatcher
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenIssuer user.RestoreTokenIssuer,
	dispatcher user.RestoreLinkDispatcher,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenIssuer == nil {
		panic(e.NewNilArgumentError("tokenIssuer"))
	}
	if dispatcher == nil {
		panic(e.NewNilArgumentError("dispatcher"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		tokenIssuer:    tokenIssuer,
		dispatcher:     dispatcher,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := user.CheckEmail(input.Email); err != nil {
		return result, err
	}

	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		if _, _, err := s.tokenIssuer.Issue(placeholderUser); err != nil {
			logging.Error(ctx, s.log, err)
		}
		s.log.Info(ctx, "Restore link requested for unknown email.", logging.Entry("email", input.Email))
		return result, nil
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for restore link.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	token, claims, err := s.tokenIssuer.Issue(u)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue restore token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	// The token stays valid even if dispatching fails, the user can
	// request another link.
	err = s.dispatcher.DispatchRestoreLink(ctx, user.RestoreLink{
		Email:     u.Email,
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
	})
	if err != nil {
		s.log.Error(
			ctx,
			"Could not dispatch restore link.",
			logging.Entry("userID", u.ID),
			logging.Entry("tokenID", claims.ID),
			logging.Entry("err", err),
		)
	} else {
		s.log.Info(
			ctx,
			"Restore link has been dispatched.",
			logging.Entry("userID", u.ID),
			logging.Entry("tokenID", claims.ID),
			logging.Entry("expiresAt", claims.ExpiresAt),
		)
	}

	return Result{Token: c.NewOptional(token, true)}, nil
}

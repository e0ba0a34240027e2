package consumerestorelink

import (
	e "authgate/internal/core/domain/errors"
	"authgate/internal/core/domain/logging"
	"authgate/internal/core/domain/user"
	"authgate/internal/core/services"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
)

type Input struct {
	Token       user.RestoreToken
	NewPassword user.RawPassword
}

type Result struct{}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	tokenIssuer    user.RestoreTokenIssuer
	ledger         user.RestoreTokenLedger
	passwordHasher user.PasswordHasher
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenIssuer user.RestoreTokenIssuer,
	ledger user.RestoreTokenLedger,
	passwordHasher user.PasswordHasher,
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
	if ledger == nil {
		panic(e.NewNilArgumentError("ledger"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		tokenIssuer:    tokenIssuer,
		ledger:         ledger,
		passwordHasher: passwordHasher,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := user.CheckPasswordStrength(input.NewPassword); err != nil {
		return result, err
	}

	claims, err := s.tokenIssuer.Verify(input.Token)
	if err != nil {
		s.log.Info(ctx, "Restore token rejected.", logging.Entry("reason", err))
		return result, fmt.Errorf("%w: %w", user.ErrInvalidOrExpiredToken, err)
	}

	u, err := s.userRepository.GetByID(ctx, claims.UserID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "User not found for restore token.", logging.Entry("userID", claims.UserID))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for restore token.",
			logging.Entry("userID", claims.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	// The password has changed since the token was issued.
	fingerprint := s.tokenIssuer.Fingerprint(u.PasswordHash)
	if subtle.ConstantTimeCompare([]byte(fingerprint), []byte(claims.Fingerprint)) != 1 {
		s.log.Info(
			ctx,
			"Restore token was issued for an outdated password.",
			logging.Entry("userID", u.ID),
			logging.Entry("tokenID", claims.ID),
		)
		return result, user.ErrInvalidOrExpiredToken
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	isFirstUse, err := s.ledger.Consume(ctx, claims)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not mark restore token as consumed.",
			logging.Entry("tokenID", claims.ID),
			logging.Entry("err", err),
		)
		return result, err
	}
	if !isFirstUse {
		s.log.Info(
			ctx,
			"Restore token has already been consumed.",
			logging.Entry("userID", u.ID),
			logging.Entry("tokenID", claims.ID),
		)
		return result, user.ErrInvalidOrExpiredToken
	}

	err = s.userRepository.SetPassword(ctx, u.ID, newPasswordHash)
	if err != nil {
		// The request may already be cancelled, the release must still land.
		if releaseErr := s.ledger.Release(context.WithoutCancel(ctx), claims); releaseErr != nil {
			s.log.Error(
				ctx,
				"Could not release restore token.",
				logging.Entry("tokenID", claims.ID),
				logging.Entry("err", releaseErr),
			)
		}
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Could not update user password, user does not exist.", logging.Entry("userID", u.ID))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user password.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"New password has been set with restore token.",
		logging.Entry("userID", u.ID),
		logging.Entry("tokenID", claims.ID),
	)
	return result, nil
}

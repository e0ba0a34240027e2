package services

import (
	"authgate/internal/app/deps"
	"authgate/internal/core/services"
	"authgate/internal/core/services/auth"
	changepassword "authgate/internal/core/services/change_password"
	consumerestorelink "authgate/internal/core/services/consume_restore_link"
	getuserbysessiontoken "authgate/internal/core/services/get_user_by_session_token"
	loginwithemail "authgate/internal/core/services/log_in_with_email"
	logout "authgate/internal/core/services/log_out"
	requestrestorelink "authgate/internal/core/services/request_restore_link"
	signupwithemail "authgate/internal/core/services/sign_up_with_email"
)

type Services struct {
	SignUpWithEmail       services.Service[signupwithemail.Input, signupwithemail.Result]
	LogInWithEmail        services.Service[loginwithemail.Input, loginwithemail.Result]
	LogOut                services.Service[logout.Input, logout.Result]
	RequestRestoreLink    services.Service[requestrestorelink.Input, requestrestorelink.Result]
	ConsumeRestoreLink    services.Service[consumerestorelink.Input, consumerestorelink.Result]
	ChangePassword        services.Service[changepassword.Input, changepassword.Result]
	GetUserBySessionToken services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUpWithEmail = signupwithemail.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordHasher,
		deps.Now,
	)
	s.LogInWithEmail = loginwithemail.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.SessionTokenIssuer,
	)
	s.LogOut = logout.New(
		deps.Logger,
		deps.SessionTokenIssuer,
	)
	s.RequestRestoreLink = requestrestorelink.New(
		deps.Logger,
		deps.UserRepository,
		deps.RestoreTokenIssuer,
		deps.RestoreLinkDispatcher,
	)
	s.ConsumeRestoreLink = consumerestorelink.New(
		deps.Logger,
		deps.UserRepository,
		deps.RestoreTokenIssuer,
		deps.RestoreTokenLedger,
		deps.PasswordHasher,
	)
	s.ChangePassword = auth.WithAuthentication(
		deps.SessionTokenIssuer,
		deps.UserRepository,
		changepassword.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
		),
	)
	s.GetUserBySessionToken = auth.WithAuthentication(
		deps.SessionTokenIssuer,
		deps.UserRepository,
		getuserbysessiontoken.New(),
	)

	return s
}

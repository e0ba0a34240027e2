package app

import (
	"authgate/internal/app/deps"
	"authgate/internal/app/services"
	"authgate/internal/http/handlers/auth"
	changepassword "authgate/internal/http/handlers/auth/change_password"
	consumerestorelink "authgate/internal/http/handlers/auth/consume_restore_link"
	loginwithemail "authgate/internal/http/handlers/auth/log_in_with_email"
	logout "authgate/internal/http/handlers/auth/log_out"
	"authgate/internal/http/handlers/auth/me"
	requestrestorelink "authgate/internal/http/handlers/auth/request_restore_link"
	signupwithemail "authgate/internal/http/handlers/auth/sign_up_with_email"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	return &http.Server{
		Handler: NewRouter(deps, s),
		Addr:    fmt.Sprintf("0.0.0.0:%d", deps.Config.Port),
	}
}

func NewRouter(deps *deps.Deps, s *services.Services) http.Handler {
	log := deps.Logger
	cookies := auth.Cookies{
		Secure: deps.Config.CookieSecure,
		TTL:    deps.Config.SessionTokenTTL,
	}

	authRouter := chi.NewRouter()
	authRouter.Use(auth.SetAuthTokenToContext)
	authRouter.Method(http.MethodPost, "/login", loginwithemail.New(log, s.LogInWithEmail, cookies))
	authRouter.Method(http.MethodPost, "/registration", signupwithemail.New(log, s.SignUpWithEmail))
	authRouter.Method(http.MethodPost, "/logout", logout.New(log, s.LogOut, cookies))
	authRouter.Method(
		http.MethodPost,
		"/restore",
		requestrestorelink.New(log, s.RequestRestoreLink, deps.Config.IsTestMode),
	)
	authRouter.Method(
		http.MethodPost,
		"/restore/token/{restoreToken}",
		consumerestorelink.New(log, s.ConsumeRestoreLink),
	)
	authRouter.Method(http.MethodGet, "/me", me.New(log, s.GetUserBySessionToken))
	authRouter.Method(http.MethodPut, "/password", changepassword.New(log, s.ChangePassword))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestrestorelink.TEST_TOKEN_HEADER},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)

	return router
}

package app

import (
	"authgate/internal/app/deps"
	"authgate/internal/app/services"
	"authgate/internal/config"
	"authgate/internal/core/domain/logging"
	uow "authgate/internal/core/domain/unit_of_work"
	"authgate/internal/core/domain/user"
	requestrestorelink "authgate/internal/http/handlers/auth/request_restore_link"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type testSuite struct {
	suite.Suite
	logger     *logging.FakeLogger
	users      *user.FakeUserRepository
	dispatcher *user.FakeRestoreLinkDispatcher
	router     http.Handler
}

func (suite *testSuite) SetupTest() {
	now := func() time.Time { return time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC) }
	unitOfWork := uow.NewFakeUnitOfWork()

	suite.logger = logging.NewFakeLogger()
	suite.users = unitOfWork.Context.UserRepository
	suite.dispatcher = user.NewFakeRestoreLinkDispatcher()

	d := &deps.Deps{
		Config: &config.Config{
			IsTestMode:      true,
			AllowedOrigins:  []string{"https://app.test"},
			SessionTokenTTL: time.Hour,
		},
		Logger:                suite.logger,
		Now:                   now,
		UnitOfWork:            unitOfWork,
		UserRepository:        suite.users,
		PasswordHasher:        user.NewFakePasswordHasher(),
		SessionTokenIssuer:    user.NewFakeSessionTokenIssuer(now),
		RestoreTokenIssuer:    user.NewFakeRestoreTokenIssuer(time.Hour, now),
		RestoreTokenLedger:    user.NewFakeRestoreTokenLedger(),
		RestoreLinkDispatcher: suite.dispatcher,
	}
	suite.router = NewRouter(d, services.InitServices(d))
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rw := httptest.NewRecorder()
	suite.router.ServeHTTP(rw, req)
	return rw
}

func (suite *testSuite) sessionCookie(rw *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rw.Result().Cookies() {
		if cookie.Name == "token" {
			return cookie
		}
	}
	suite.FailNow("session cookie is not set")
	return nil
}

func (suite *testSuite) TestRestoreFlow() {
	rw := suite.do(http.MethodPost, "/auth/registration", `{"name":"John","email":"john@test.com","password":"oldpass123"}`)
	suite.Equal(http.StatusCreated, rw.Code)

	rw = suite.do(http.MethodPost, "/auth/restore", `{"email":"john@test.com"}`)
	suite.Equal(http.StatusCreated, rw.Code)
	suite.Empty(rw.Body.String())
	token := rw.Header().Get(requestrestorelink.TEST_TOKEN_HEADER)
	suite.NotEmpty(token)
	suite.Equal(1, suite.dispatcher.SentCount())

	rw = suite.do(http.MethodPost, "/auth/restore/token/"+token, `{"password":"newpass123"}`)
	suite.Equal(http.StatusCreated, rw.Code)

	rw = suite.do(http.MethodPost, "/auth/restore/token/"+token, `{"password":"otherpass123"}`)
	suite.Equal(http.StatusBadRequest, rw.Code)
	suite.Contains(rw.Body.String(), user.ErrInvalidOrExpiredToken.Error())

	rw = suite.do(http.MethodPost, "/auth/login", `{"email":"john@test.com","password":"oldpass123"}`)
	suite.Equal(http.StatusBadRequest, rw.Code)

	rw = suite.do(http.MethodPost, "/auth/login", `{"email":"john@test.com","password":"newpass123"}`)
	suite.Equal(http.StatusOK, rw.Code)
}

func (suite *testSuite) TestRestoreForUnknownEmailLooksTheSame() {
	rw := suite.do(http.MethodPost, "/auth/restore", `{"email":"nobody@test.com"}`)
	suite.Equal(http.StatusCreated, rw.Code)
	suite.Empty(rw.Body.String())
	suite.Equal(0, suite.dispatcher.SentCount())
}

func (suite *testSuite) TestSessionLifecycle() {
	rw := suite.do(http.MethodPost, "/auth/registration", `{"name":"John","email":"john@test.com","password":"oldpass123"}`)
	suite.Equal(http.StatusCreated, rw.Code)

	rw = suite.do(http.MethodGet, "/auth/me", "")
	suite.Equal(http.StatusUnauthorized, rw.Code)

	rw = suite.do(http.MethodPost, "/auth/login", `{"email":"John@Test.com","password":"oldpass123"}`)
	suite.Equal(http.StatusOK, rw.Code)
	cookie := suite.sessionCookie(rw)

	rw = suite.do(http.MethodPost, "/auth/login", `{"email":"john@test.com","password":"oldpass123"}`, cookie)
	suite.Equal(http.StatusBadRequest, rw.Code)
	suite.Contains(rw.Body.String(), user.ErrAlreadyAuthenticated.Error())

	rw = suite.do(http.MethodGet, "/auth/me", "", cookie)
	suite.Equal(http.StatusOK, rw.Code)
	body := map[string]map[string]any{}
	suite.Nil(json.Unmarshal(rw.Body.Bytes(), &body))
	suite.Equal("john@test.com", body["user"]["email"])

	rw = suite.do(
		http.MethodPut,
		"/auth/password",
		`{"current_password":"oldpass123","new_password":"newpass123"}`,
		cookie,
	)
	suite.Equal(http.StatusCreated, rw.Code)

	rw = suite.do(http.MethodPost, "/auth/logout", "", cookie)
	suite.Equal(http.StatusCreated, rw.Code)
	suite.Equal("", suite.sessionCookie(rw).Value)
	suite.Equal(0, suite.logger.CountByLevel(logging.ERROR))
}

func (suite *testSuite) preflight(origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rw := httptest.NewRecorder()
	suite.router.ServeHTTP(rw, req)
	return rw
}

func (suite *testSuite) TestCORSPreflight() {
	rw := suite.preflight("https://app.test")

	suite.Equal("https://app.test", rw.Header().Get("Access-Control-Allow-Origin"))
	suite.Equal("true", rw.Header().Get("Access-Control-Allow-Credentials"))
}

func (suite *testSuite) TestCORSPreflightUnknownOrigin() {
	rw := suite.preflight("https://evil.test")

	suite.Empty(rw.Header().Get("Access-Control-Allow-Origin"))
}

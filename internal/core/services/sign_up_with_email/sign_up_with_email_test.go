package signupwithemail

import (
	c "authgate/internal/core/domain/common"
	"authgate/internal/core/domain/logging"
	uow "authgate/internal/core/domain/unit_of_work"
	"authgate/internal/core/domain/user"
	"authgate/internal/core/services"
	loginwithemail "authgate/internal/core/services/log_in_with_email"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	NAME         = user.Name("Jane Doe")
	EMAIL        = c.Email("test@test.test")
	RAW_PASSWORD = user.RawPassword("test-password-1")
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UnitOfWork     *uow.FakeUnitOfWork
	PasswordHasher *user.FakePasswordHasher
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UnitOfWork = uow.NewFakeUnitOfWork()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.Service = New(
		suite.Logger,
		suite.UnitOfWork,
		suite.PasswordHasher,
		func() time.Time { return NOW },
	)
}

func TestSignUpWithEmailService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	result, err := suite.Service.Run(
		context.Background(),
		Input{Name: NAME, Email: EMAIL, Password: RAW_PASSWORD},
	)

	assert := suite.Require()
	assert.Nil(err)
	assert.NotEqual(user.ID(0), result.User.ID)
	assert.Equal(NOW, result.User.CreatedAt)
	assert.Equal(NAME, result.User.Name)
	assert.Equal(EMAIL, result.User.Email)
	assert.NotEqual(string(RAW_PASSWORD), string(result.User.PasswordHash))
	assert.True(suite.UnitOfWork.Context.WasCommitCalled)
}

func (suite *testSuite) TestRegisteredUserCanLogIn() {
	ctx := context.Background()
	result, err := suite.Service.Run(ctx, Input{Name: NAME, Email: EMAIL, Password: RAW_PASSWORD})
	suite.Require().Nil(err)

	sessions := user.NewFakeSessionTokenIssuer(func() time.Time { return NOW })
	logIn := loginwithemail.New(
		suite.Logger,
		suite.UnitOfWork.Context.UserRepository,
		suite.PasswordHasher,
		sessions,
	)
	logInResult, err := logIn.Run(ctx, loginwithemail.Input{Email: EMAIL, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.Nil(err)
	claims, err := sessions.Verify(logInResult.Token)
	assert.Nil(err)
	assert.Equal(result.User.ID, claims.UserID)
}

func (suite *testSuite) TestEmailAlreadyExistsError() {
	ctx := context.Background()
	suite.UnitOfWork.Context.UserRepository.Create(
		ctx,
		user.CreateUserInput{
			Name:         NAME,
			Email:        EMAIL,
			PasswordHash: user.PasswordHash("test"),
			CreatedAt:    NOW,
		},
	)

	_, err := suite.Service.Run(ctx, Input{Name: NAME, Email: EMAIL, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrEmailAlreadyExists)
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
	assert.True(suite.UnitOfWork.Context.WasRollbackCalled)
}

func (suite *testSuite) TestInvalidInput() {
	cases := []struct {
		name string
		in   Input
		err  error
	}{
		{"empty name", Input{Email: EMAIL, Password: RAW_PASSWORD}, user.ErrInvalidInput},
		{"digits in name", Input{Name: "R2D2", Email: EMAIL, Password: RAW_PASSWORD}, user.ErrInvalidInput},
		{"bad email", Input{Name: NAME, Email: "nope", Password: RAW_PASSWORD}, user.ErrInvalidInput},
		{"short password", Input{Name: NAME, Email: EMAIL, Password: "a1"}, user.ErrWeakPassword},
		{"no digit", Input{Name: NAME, Email: EMAIL, Password: "abcdefghij"}, user.ErrWeakPassword},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			_, err := suite.Service.Run(context.Background(), tc.in)
			suite.ErrorIs(err, tc.err)
		})
	}

	assert := suite.Require()
	assert.Empty(suite.UnitOfWork.Context.UserRepository.Users)
	assert.Equal(0, suite.PasswordHasher.HashCount)
}

func (suite *testSuite) TestBeginError() {
	suite.UnitOfWork.ReturnError = true

	_, err := suite.Service.Run(
		context.Background(),
		Input{Name: NAME, Email: EMAIL, Password: RAW_PASSWORD},
	)

	assert := suite.Require()
	assert.NotNil(err)
	assert.Equal(1, suite.Logger.CountByLevel(logging.ERROR))
}

package session

import (
	"authgate/internal/core/domain/user"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JWT struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewJWT(secretKey string, ttl time.Duration, now func() time.Time) *JWT {
	return &JWT{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       now,
	}
}

func (j *JWT) Issue(u user.User) (user.SessionToken, error) {
	issuedAt := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(int64(u.ID), 10),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(j.ttl)),
	})
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", err
	}
	return user.SessionToken(signed), nil
}

func (j *JWT) Verify(token user.SessionToken) (claims user.SessionClaims, err error) {
	registered := jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(
		string(token),
		&registered,
		func(t *jwt.Token) (interface{}, error) { return j.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return claims, errors.Join(user.ErrInvalidSessionToken, err)
	}
	userID, err := strconv.ParseInt(registered.Subject, 10, 64)
	if err != nil {
		return claims, user.ErrInvalidSessionToken
	}
	claims.UserID = user.ID(userID)
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}
	claims.ExpiresAt = registered.ExpiresAt.Time
	return claims, nil
}

package restoretoken

import (
	"authgate/internal/core/domain/user"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type claims struct {
	jwt.RegisteredClaims
	Fingerprint string `json:"fpr"`
}

// JWT issues HS256 signed restore tokens. A token is bound to the password
// hash the user had at issuance through the fpr claim.
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

func (j *JWT) Issue(u user.User) (token user.RestoreToken, result user.RestoreClaims, err error) {
	issuedAt := j.now().Truncate(time.Second)
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(int64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(j.ttl)),
		},
		Fingerprint: j.Fingerprint(u.PasswordHash),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(j.secretKey)
	if err != nil {
		return token, result, err
	}
	return user.RestoreToken(signed), toRestoreClaims(c, u.ID), nil
}

func (j *JWT) Verify(token user.RestoreToken) (result user.RestoreClaims, err error) {
	c := claims{}
	_, err = jwt.ParseWithClaims(
		string(token),
		&c,
		func(t *jwt.Token) (interface{}, error) { return j.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return result, user.ErrRestoreTokenExpired
	}
	if err != nil {
		return result, fmt.Errorf("%w: %s", user.ErrInvalidRestoreTokenSignature, err)
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || c.ID == "" || c.IssuedAt == nil || c.Fingerprint == "" {
		return result, user.ErrInvalidRestoreTokenSignature
	}
	return toRestoreClaims(c, user.ID(userID)), nil
}

func (j *JWT) Fingerprint(hash user.PasswordHash) string {
	mac := hmac.New(sha256.New, j.secretKey)
	mac.Write([]byte(hash))
	return hex.EncodeToString(mac.Sum(nil))
}

func toRestoreClaims(c claims, userID user.ID) user.RestoreClaims {
	return user.RestoreClaims{
		ID:          user.RestoreTokenID(c.ID),
		UserID:      userID,
		Fingerprint: c.Fingerprint,
		IssuedAt:    c.IssuedAt.Time,
		ExpiresAt:   c.ExpiresAt.Time,
	}
}

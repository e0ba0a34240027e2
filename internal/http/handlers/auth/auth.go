package auth

import (
	"authgate/internal/core/domain/user"
	"authgate/internal/core/services/auth"
	"net/http"
	"strings"
	"time"
)

const (
	COOKIE_NAME        = "token"
	AUTH_TOKEN_PREFIX  = "Bearer "
	AUTH_TOKEN_MAX_LEN = 1024
)

// ParseToken reads the session token from the token cookie, falling back
// to the authorization header.
func ParseToken(r *http.Request) (token user.SessionToken, ok bool) {
	if cookie, err := r.Cookie(COOKIE_NAME); err == nil && cookie.Value != "" {
		if len(cookie.Value) > AUTH_TOKEN_MAX_LEN {
			return token, false
		}
		return user.SessionToken(cookie.Value), true
	}

	header := r.Header.Get("authorization")
	if header == "" {
		return token, false
	}
	parts := strings.SplitN(header, AUTH_TOKEN_PREFIX, 2)
	if len(parts) != 2 || parts[1] == "" {
		return token, false
	}
	if len(parts[1]) > AUTH_TOKEN_MAX_LEN {
		return token, false
	}
	return user.SessionToken(parts[1]), true
}

func SetAuthTokenToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := ParseToken(r)
		if ok {
			r = r.WithContext(auth.WithToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}

type Cookies struct {
	Secure bool
	TTL    time.Duration
}

func (c Cookies) Set(rw http.ResponseWriter, token user.SessionToken) {
	http.SetCookie(rw, &http.Cookie{
		Name:     COOKIE_NAME,
		Value:    string(token),
		Path:     "/",
		MaxAge:   int(c.TTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c Cookies) Clear(rw http.ResponseWriter) {
	http.SetCookie(rw, &http.Cookie{
		Name:     COOKIE_NAME,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

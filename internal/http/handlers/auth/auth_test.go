package auth

import (
	"authgate/internal/core/domain/user"
	"authgate/internal/core/services/auth"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseToken(t *testing.T) {
	cases := []struct {
		id     string
		cookie string
		header string
		token  user.SessionToken
		ok     bool
	}{
		{id: "cookie", cookie: "from-cookie", token: "from-cookie", ok: true},
		{id: "header", header: "Bearer from-header", token: "from-header", ok: true},
		{id: "cookie wins", cookie: "from-cookie", header: "Bearer from-header", token: "from-cookie", ok: true},
		{id: "none", ok: false},
		{id: "no prefix", header: "from-header", ok: false},
		{id: "empty bearer", header: "Bearer ", ok: false},
		{id: "too long", cookie: strings.Repeat("a", AUTH_TOKEN_MAX_LEN+1), ok: false},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if testcase.cookie != "" {
				r.AddCookie(&http.Cookie{Name: COOKIE_NAME, Value: testcase.cookie})
			}
			if testcase.header != "" {
				r.Header.Set("Authorization", testcase.header)
			}

			token, ok := ParseToken(r)

			require.Equal(t, testcase.ok, ok)
			require.Equal(t, testcase.token, token)
		})
	}
}

func TestSetAuthTokenToContext(t *testing.T) {
	var got interface{}
	handler := SetAuthTokenToContext(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		got = r.Context().Value(auth.CONTEXT_AUTH_TOKEN_KEY)
	}))
	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	r.AddCookie(&http.Cookie{Name: COOKIE_NAME, Value: "token-value"})

	handler.ServeHTTP(httptest.NewRecorder(), r)

	require.Equal(t, user.SessionToken("token-value"), got)
}

func TestCookies(t *testing.T) {
	cookies := Cookies{Secure: true, TTL: time.Hour}

	rw := httptest.NewRecorder()
	cookies.Set(rw, "token-value")
	set := rw.Result().Cookies()
	require.Len(t, set, 1)
	require.Equal(t, COOKIE_NAME, set[0].Name)
	require.Equal(t, "token-value", set[0].Value)
	require.Equal(t, 3600, set[0].MaxAge)
	require.True(t, set[0].HttpOnly)
	require.True(t, set[0].Secure)

	rw = httptest.NewRecorder()
	cookies.Clear(rw)
	cleared := rw.Result().Cookies()
	require.Len(t, cleared, 1)
	require.Equal(t, "", cleared[0].Value)
	require.True(t, cleared[0].MaxAge < 0)
}

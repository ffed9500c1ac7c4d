package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/wordcap/backend/internal/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var tokens = auth.NewTokens("test-secret", time.Hour)

func newRouter(extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions("wordcap_test", cookie.NewStore([]byte("session-secret"))))
	r.Use(Identity(tokens))
	r.Use(extra...)
	r.GET("/who", func(c *gin.Context) {
		p, ok := Participant(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"kind": "nobody"})
			return
		}
		kind := "user"
		if p.IsAnonymous() {
			kind = "anon"
		}
		c.JSON(http.StatusOK, gin.H{"kind": kind, "id": p.ID()})
	})
	return r
}

func get(r http.Handler, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(t *testing.T, userID string) func(*http.Request) {
	t.Helper()
	raw, err := tokens.Issue(userID, "name")
	require.NoError(t, err)
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+raw) }
}

func TestIdentityWithToken(t *testing.T) {
	w := get(newRouter(AnonymousSession(true)), bearer(t, "u1"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"kind":"user","id":"u1"}`, w.Body.String())
	assert.Empty(t, w.Result().Cookies(), "signed-in callers get no anonymous session")
}

func TestIdentityRejectsBadToken(t *testing.T) {
	for name, header := range map[string]string{
		"garbage":   "Bearer nope",
		"no scheme": "nope",
		"empty":     "Bearer ",
	} {
		t.Run(name, func(t *testing.T) {
			w := get(newRouter(), func(r *http.Request) { r.Header.Set("Authorization", header) })
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAnonymousSessionIsSticky(t *testing.T) {
	r := newRouter(AnonymousSession(true))

	first := get(r, nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), `"kind":"anon"`)
	cookies := first.Result().Cookies()
	require.NotEmpty(t, cookies)

	second := get(r, func(req *http.Request) {
		for _, c := range cookies {
			req.AddCookie(c)
		}
	})
	assert.Equal(t, first.Body.String(), second.Body.String())

	third := get(r, nil)
	assert.NotEqual(t, first.Body.String(), third.Body.String(), "a new visitor gets a new id")
}

func TestAnonymousSessionWithoutCreate(t *testing.T) {
	w := get(newRouter(AnonymousSession(false)), nil)
	assert.JSONEq(t, `{"kind":"nobody"}`, w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestAuthRequired(t *testing.T) {
	r := newRouter(AuthRequired())

	assert.Equal(t, http.StatusUnauthorized, get(r, nil).Code)
	assert.Equal(t, http.StatusOK, get(r, bearer(t, "u1")).Code)
}

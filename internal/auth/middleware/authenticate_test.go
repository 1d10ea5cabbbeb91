package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/auth"
	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/users"
)

const testSecret = "test-secret"

type stubUsers map[string]*users.User

func (s stubUsers) GetByID(_ context.Context, id string) (*users.User, error) {
	if id == "broken" {
		return nil, errors.New("connection reset")
	}
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, users.ErrNotFound
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", mw, func(c *gin.Context) {
		u, ok := auth.CurrentUser(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": auth.UserID(c), "email": u.Email})
	})
	return r
}

func doGet(r http.Handler, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestAuthenticate_JWT(t *testing.T) {
	lookup := stubUsers{"u-1": {ID: "u-1", Email: "ada@example.com"}}
	r := newRouter(Authenticate(NewJWTVerifier(testSecret), lookup, zap.NewNop()))

	t.Run("valid token", func(t *testing.T) {
		tok := signToken(t, testSecret, jwt.MapClaims{"sub": "u-1", "exp": time.Now().Add(time.Hour).Unix()})
		rr := doGet(r, map[string]string{"Authorization": "Bearer " + tok})
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"id":"u-1"`)
	})

	t.Run("missing header", func(t *testing.T) {
		rr := doGet(r, nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok := signToken(t, "other", jwt.MapClaims{"sub": "u-1"})
		rr := doGet(r, map[string]string{"Authorization": "Bearer " + tok})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("expired", func(t *testing.T) {
		tok := signToken(t, testSecret, jwt.MapClaims{"sub": "u-1", "exp": time.Now().Add(-time.Hour).Unix()})
		rr := doGet(r, map[string]string{"Authorization": "Bearer " + tok})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("no subject", func(t *testing.T) {
		tok := signToken(t, testSecret, jwt.MapClaims{"name": "x"})
		rr := doGet(r, map[string]string{"Authorization": "Bearer " + tok})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		tok := signToken(t, testSecret, jwt.MapClaims{"sub": "ghost"})
		rr := doGet(r, map[string]string{"Authorization": "Bearer " + tok})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("lookup failure", func(t *testing.T) {
		tok := signToken(t, testSecret, jwt.MapClaims{"sub": "broken"})
		rr := doGet(r, map[string]string{"Authorization": "Bearer " + tok})
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestJWTVerifier_RejectsNoneAlgorithm(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTVerifier(testSecret).Verify(context.Background(), tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHeaderUser(t *testing.T) {
	lookup := stubUsers{"u-1": {ID: "u-1", Email: "ada@example.com"}}
	r := newRouter(HeaderUser(lookup, zap.NewNop()))

	assert.Equal(t, http.StatusOK, doGet(r, map[string]string{"X-User-Id": "u-1"}).Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, map[string]string{"X-User-Id": "ghost"}).Code)
}

func TestAdminKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	build := func(key string) *gin.Engine {
		r := gin.New()
		r.DELETE("/x", AdminKey(key), func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	call := func(r *gin.Engine, key string) int {
		req := httptest.NewRequest(http.MethodDelete, "/x", nil)
		if key != "" {
			req.Header.Set("X-API-Key", key)
		}
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, call(build(""), ""), "disabled when not configured")
	assert.Equal(t, http.StatusUnauthorized, call(build("k"), ""))
	assert.Equal(t, http.StatusUnauthorized, call(build("k"), "wrong"))
	assert.Equal(t, http.StatusOK, call(build("k"), "k"))
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/internal/config"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func userClaims(role string) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sid":  "sid-1",
		"name": "Alice",
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	}
}

func doRequest(authz string, mw ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	_ = h(c)
	return rec, c
}

func TestAuthJWT_ValidToken(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}
	tok := signToken(t, testSecret, userClaims("USER"))

	rec, c := doRequest("Bearer "+tok, AuthJWT(cfg))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sid-1", c.Get(CtxSessionIDKey))
	assert.Equal(t, "Alice", c.Get(CtxUserNameKey))
	assert.Equal(t, "USER", c.Get(CtxUserRoleKey))
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec, _ := doRequest("", AuthJWT(config.Config{JWTSecret: testSecret}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_NotBearer(t *testing.T) {
	rec, _ := doRequest("Basic abc", AuthJWT(config.Config{JWTSecret: testSecret}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	tok := signToken(t, "other-secret", userClaims("USER"))
	rec, _ := doRequest("Bearer "+tok, AuthJWT(config.Config{JWTSecret: testSecret}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_Expired(t *testing.T) {
	claims := userClaims("USER")
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	tok := signToken(t, testSecret, claims)

	rec, _ := doRequest("Bearer "+tok, AuthJWT(config.Config{JWTSecret: testSecret}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_MissingName(t *testing.T) {
	claims := userClaims("USER")
	delete(claims, "name")
	tok := signToken(t, testSecret, claims)

	rec, _ := doRequest("Bearer "+tok, AuthJWT(config.Config{JWTSecret: testSecret}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_EmptySidAllowed(t *testing.T) {
	// MANAGERトークンはsidが空文字
	claims := userClaims("MANAGER")
	claims["sid"] = ""
	tok := signToken(t, testSecret, claims)

	rec, c := doRequest("Bearer "+tok, AuthJWT(config.Config{JWTSecret: testSecret}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", c.Get(CtxSessionIDKey))
}

func TestManagerRoleGuard(t *testing.T) {
	cfg := config.Config{JWTSecret: testSecret}

	tok := signToken(t, testSecret, userClaims("MANAGER"))
	rec, _ := doRequest("Bearer "+tok, AuthJWT(cfg), ManagerRoleGuard())
	assert.Equal(t, http.StatusOK, rec.Code)

	tok = signToken(t, testSecret, userClaims("USER"))
	rec, _ = doRequest("Bearer "+tok, AuthJWT(cfg), ManagerRoleGuard())
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

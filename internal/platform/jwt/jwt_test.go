package jwtmw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateToken(t *testing.T) {
	gen := NewGenerator(testSecret)

	t.Run("token carries subject and email", func(t *testing.T) {
		token, err := gen.GenerateToken(42, "user@example.com", "")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := VerifyToken(token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "user@example.com", claims.Email)
		assert.Empty(t, claims.Provider)
	})

	t.Run("provider claim is set when given", func(t *testing.T) {
		token, err := gen.GenerateToken(7, "oauth@example.com", "twitter")
		require.NoError(t, err)

		claims, err := VerifyToken(token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, "twitter", claims.Provider)
	})

	t.Run("no expiry claim is set", func(t *testing.T) {
		token, err := gen.GenerateToken(1, "a@example.com", "")
		require.NoError(t, err)

		parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		require.NoError(t, err)
		mc := parsed.Claims.(jwt.MapClaims)
		_, hasExp := mc["exp"]
		assert.False(t, hasExp, "token should not carry an exp claim")
		_, hasIat := mc["iat"]
		assert.True(t, hasIat, "token should carry an iat claim")
	})
}

func TestVerifyToken(t *testing.T) {
	gen := NewGenerator(testSecret)

	t.Run("wrong secret is rejected", func(t *testing.T) {
		token, err := gen.GenerateToken(1, "a@example.com", "")
		require.NoError(t, err)

		_, err = VerifyToken(token, "wrong-secret")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := VerifyToken("not.a.token", testSecret)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("expired token is classified", func(t *testing.T) {
		expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":   "1",
			"email": "a@example.com",
			"exp":   time.Now().Add(-time.Hour).Unix(),
		})
		signed, err := expired.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = VerifyToken(signed, testSecret)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("token without email is rejected", func(t *testing.T) {
		bare := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"})
		signed, err := bare.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = VerifyToken(signed, testSecret)
		assert.ErrorIs(t, err, ErrMissingClaims)
	})

	t.Run("non-numeric subject is rejected", func(t *testing.T) {
		bad := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":   "forty-two",
			"email": "a@example.com",
		})
		signed, err := bad.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = VerifyToken(signed, testSecret)
		assert.ErrorIs(t, err, ErrMissingClaims)
	})
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func() *gin.Engine {
		r := gin.New()
		r.GET("/protected", AuthRequired(testSecret), func(c *gin.Context) {
			claims, ok := ClaimsFromContext(c)
			require.True(t, ok)
			c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID, "email": claims.Email})
		})
		return r
	}

	t.Run("valid bearer token passes", func(t *testing.T) {
		token, err := NewGenerator(testSecret).GenerateToken(5, "me@example.com", "")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "me@example.com")
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		token, err := NewGenerator("other-secret").GenerateToken(5, "me@example.com", "")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

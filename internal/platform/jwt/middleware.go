package jwtmw

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys under which verified claims are stored for downstream handlers.
const (
	ContextUserID   = "userID"
	ContextEmail    = "email"
	ContextProvider = "provider"
)

// Claims is the verified identity extracted from a bearer token.
type Claims struct {
	UserID   uint
	Email    string
	Provider string
}

// Verification failure classes. Handlers map all of them to 401 but the
// distinction is kept for logging and tests.
var (
	// ErrTokenExpired indicates the token carried an exp claim in the past.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenInvalid indicates a malformed token or a signature mismatch.
	ErrTokenInvalid = errors.New("could not validate credentials")

	// ErrMissingClaims indicates a verified token without the required
	// sub/email claims.
	ErrMissingClaims = errors.New("invalid token payload")
)

// VerifyToken checks the signature and structure of a compact token and
// returns its claims. Only HMAC signing is accepted.
func VerifyToken(tokenStr, secret string) (Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if !token.Valid {
		return Claims{}, ErrTokenInvalid
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}

	// sub is the user ID rendered as a string
	sub, ok := mc["sub"].(string)
	if !ok {
		return Claims{}, ErrMissingClaims
	}
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return Claims{}, ErrMissingClaims
	}
	email, ok := mc["email"].(string)
	if !ok || email == "" {
		return Claims{}, ErrMissingClaims
	}

	provider, _ := mc["provider"].(string)
	return Claims{UserID: uint(id), Email: email, Provider: provider}, nil
}

// AuthRequired returns a Gin middleware that validates bearer tokens and
// restricts access to authenticated users only. The signing secret is
// injected at router construction instead of being read per request.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Parse and verify the token
		claims, err := VerifyToken(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		// 3. Expose claims to downstream handlers
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextProvider, claims.Provider)

		c.Next()
	}
}

// ClaimsFromContext rebuilds the verified claims stored by AuthRequired.
func ClaimsFromContext(c *gin.Context) (Claims, bool) {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return Claims{}, false
	}
	userID, ok := id.(uint)
	if !ok {
		return Claims{}, false
	}
	return Claims{
		UserID:   userID,
		Email:    c.GetString(ContextEmail),
		Provider: c.GetString(ContextProvider),
	}, true
}

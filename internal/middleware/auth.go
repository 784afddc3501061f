package middleware

import (
	"errors"
	"net/http"
	"strings"

	"coinnecta/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ActorKey is the gin context key holding the token subject of the current request.
const ActorKey = "actor"

var ErrMissingToken = errors.New("authorization is missing")

// ParseOperatorToken validates an HS256 token and returns its subject.
func ParseOperatorToken(tokenString string, secret []byte) (string, error) {
	if tokenString == "" {
		return "", ErrMissingToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	sub, _ := token.Claims.GetSubject()
	return sub, nil
}

// RequireOperator checks the operator token on every request. An empty secret disables the check.
// The token is read from the access_token cookie first, then from the Authorization header.
func RequireOperator(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(secret) == 0 {
			c.Next()
			return
		}

		tokenString, cookieErr := c.Cookie("access_token")
		if cookieErr != nil || tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"))
				return
			}
			tokenString = parts[1]
		}

		sub, err := ParseOperatorToken(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token: "+err.Error()))
			return
		}

		c.Set(ActorKey, sub)
		c.Next()
	}
}

// Actor returns the token subject set by RequireOperator, empty when auth is off.
func Actor(c *gin.Context) string {
	return c.GetString(ActorKey)
}

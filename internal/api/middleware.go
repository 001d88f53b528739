package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// Constants for context keys
const ContextPrincipalKey = "principal"

// Header carrying the service-to-service credential for admin routes.
const serviceCredentialHeader = "X-Service-Credential"

// Principal is the authenticated caller. Tokens are issued by the users
// service; only the numeric user id matters here. The raw token is kept
// so collaborator calls can forward it.
type Principal struct {
	UserID int64
	Token  string
}

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			// Validate the alg is what we expect:
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, fmt.Sprintf("Invalid token: %v", err))
			}
			return
		}

		userID, err := userIDFromClaims(claims)
		if !token.Valid || err != nil {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		c.Set(ContextPrincipalKey, Principal{UserID: userID, Token: tokenString})
		c.Next()
	}
}

// userIDFromClaims pulls the numeric user id out of the claims. The
// issuer has used user_id, sub and id over time, and JSON numbers arrive
// as float64, so all shapes are accepted.
func userIDFromClaims(claims jwt.MapClaims) (int64, error) {
	for _, key := range []string{"user_id", "sub", "id"} {
		raw, ok := claims[key]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case float64:
			return int64(v), nil
		case string:
			id, err := strconv.ParseInt(v, 10, 64)
			if err == nil {
				return id, nil
			}
		}
	}
	return 0, errors.New("no user id claim")
}

// AdminMiddleware gates the template administration routes behind a
// shared service credential, verified against its bcrypt hash.
func AdminMiddleware(credentialHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if credentialHash == "" {
			abortWithError(c, http.StatusForbidden, "Admin access is not configured")
			return
		}
		credential := c.GetHeader(serviceCredentialHeader)
		if credential == "" {
			abortWithError(c, http.StatusUnauthorized, "Service credential is missing")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(credentialHash), []byte(credential)); err != nil {
			abortWithError(c, http.StatusForbidden, "Invalid service credential")
			return
		}
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// Helper function to get the authenticated principal from context.
func getPrincipalFromContext(c *gin.Context) (Principal, error) {
	raw, exists := c.Get(ContextPrincipalKey)
	if !exists {
		return Principal{}, errors.New("principal not found in context")
	}
	principal, ok := raw.(Principal)
	if !ok {
		return Principal{}, errors.New("invalid principal type in context")
	}
	return principal, nil
}

package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"zela/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// CustomerIDKey is the gin context key under which the authenticated
// customer's ID is stored.
const CustomerIDKey = "customerID"

// JWTAuthCustomerMiddleware authenticates the customer from a Bearer
// token and stores the customer ID on the request context. Every
// booking endpoint requires it: sessions are owned by exactly one
// customer identity.
func JWTAuthCustomerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		customerID, err := extractCustomerID(tokenString)
		if err != nil || customerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		c.Set(CustomerIDKey, customerID)
		c.Next()
	}
}

func extractCustomerID(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	return sub, nil
}

// CustomerID returns the authenticated customer's ID from the context.
func CustomerID(c *gin.Context) string {
	return c.GetString(CustomerIDKey)
}

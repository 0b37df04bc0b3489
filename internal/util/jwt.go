package util

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims is the admin-session token payload.
type AdminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func GenerateAdminJWT(username, secret string, expiration time.Duration) (string, error) {
	claims := &AdminClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseAdminJWT(tokenString, secret string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*AdminClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}

// GetAdminFromContext returns the admin claims set by the auth middleware,
// or nil outside an authenticated admin request.
func GetAdminFromContext(c *gin.Context) *AdminClaims {
	v, exists := c.Get("admin")
	if !exists {
		return nil
	}
	claims, ok := v.(*AdminClaims)
	if !ok {
		return nil
	}
	return claims
}

package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"flutterlearn-service/internal/config"
	"flutterlearn-service/internal/models"
)

type Claims struct {
	UserID string      `json:"userId"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

func ValidateJWT(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("token is required")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// IdentityFromRequest resolves the caller's identity. A bearer token
// wins; without one the gateway-injected X-User-ID / X-User-Role headers
// are trusted.
func IdentityFromRequest(c *gin.Context) (string, models.Role, error) {
	tokenString := c.GetHeader("Authorization")
	if tokenString != "" {
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
		claims, err := ValidateJWT(tokenString)
		if err != nil {
			return "", "", err
		}
		return claims.UserID, claims.Role, nil
	}

	userID := c.GetHeader("X-User-ID")
	role := models.Role(c.GetHeader("X-User-Role"))
	if role == "" {
		role = models.RoleParticipant
	}
	return userID, role, nil
}

func GenerateJWT(userID string, role models.Role) (string, error) {
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

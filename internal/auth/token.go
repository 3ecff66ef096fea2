package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/recipehub/gin-recipe-api/internal/models"
)

// AccessTokenTTL is how long issued bearer tokens stay valid
const AccessTokenTTL = 24 * time.Hour

// GenerateAccessToken issues an HMAC-signed JWT for the user. The uid and
// role claims are what the auth middleware extracts on every request.
func GenerateAccessToken(user *models.User, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid":  user.ID,
		"role": user.Role,
		"exp":  now.Add(AccessTokenTTL).Unix(),
		"iat":  now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

package utils

import (
	"errors"
	"time"

	"github.com/ankit705yadav/skillCircle/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// Claims mirrors the tokens minted by the identity provider. The backend
// only reads the subject; it never issues credentials of its own outside
// of local development.
type Claims struct {
	jwt.RegisteredClaims
}

// ValidateToken verifies an identity-provider token and returns its claims.
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// GenerateDevToken mints a token for local development and the seeder,
// where no external identity provider is running.
func GenerateDevToken(subject string) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "skillcircle-backend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

package utils

import (
	"errors"
	"time"

	"github.com/sripavantejb/GuideXpert-Backend/config"

	"github.com/golang-jwt/jwt"
)

// GenerateAdminToken creates a signed JWT for an authenticated admin.
func GenerateAdminToken(adminID string, duration time.Duration) (string, error) {
	secret := config.AppConfig.AdminJWTSecret
	if secret == "" {
		return "", errors.New("ADMIN_JWT_SECRET is not set")
	}
	claims := jwt.MapClaims{
		"sub": adminID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAdminToken parses and validates an admin token string and returns
// the admin ID from its subject claim.
func ValidateAdminToken(tokenString string) (string, error) {
	secret := config.AppConfig.AdminJWTSecret
	if secret == "" {
		return "", errors.New("ADMIN_JWT_SECRET is not set")
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}
	return sub, nil
}

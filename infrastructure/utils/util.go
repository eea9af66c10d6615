package utils

import (
	"errors"
	"time"

	"leadbridge/infrastructure/logger"

	"github.com/golang-jwt/jwt"
)

// GetCurrentTime is the clock behind batch and error log timestamps.
func GetCurrentTime() time.Time {
	return time.Now().UTC()
}

func GenerateToken(payload map[string]interface{}, secretKey string) (string, error) {
	var claims jwt.MapClaims = payload
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while generate token")
		return "", err
	}
	return tokenString, nil
}

// GenerateOperatorToken issues the bearer token accepted by the API auth middleware.
func GenerateOperatorToken(operator, secretKey string, ttl time.Duration) (string, error) {
	if secretKey == "" {
		return "", errors.New("app.secretKey is not set, API authentication is disabled")
	}
	if operator == "" {
		return "", errors.New("operator name is required")
	}
	now := GetCurrentTime()
	return GenerateToken(map[string]interface{}{
		"sub": operator,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}, secretKey)
}

package utils

import (
	"errors"
	"strconv"
	"time"

	"jobpay/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "jobpay-api"

var ErrInvalidToken = errors.New("invalid token claims")

// GenerateProfileToken signs a bearer token that identifies profileID.
func GenerateProfileToken(profileID uint, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("JWT_SECRET not configured")
	}

	now := time.Now()
	claims := models.ProfileClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatUint(uint64(profileID), 10),
		},
		ProfileID: profileID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseProfileToken validates tokenStr and returns its claims.
func ParseProfileToken(tokenStr, secret string) (*models.ProfileClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &models.ProfileClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.ProfileClaims)
	if !ok || !token.Valid || claims.ProfileID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

package models

import "github.com/golang-jwt/jwt/v5"

// ProfileClaims identifies the caller profile in a bearer token.
type ProfileClaims struct {
	jwt.RegisteredClaims
	ProfileID uint `json:"profile_id"`
}

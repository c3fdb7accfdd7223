package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds staff credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued access token and the staff member it belongs to.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	Staff       StaffInfo `json:"staff"`
	IssuedAt    time.Time `json:"issued_at"`
}

// StaffInfo describes the authenticated staff member in responses.
type StaffInfo struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// StaffClaims represents the JWT payload for access tokens.
type StaffClaims struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	jwt.RegisteredClaims
}

package dto

import "github.com/golang-jwt/jwt/v5"

type SignUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type SignUpResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type CompleteProfileRequest struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	Conditions  string `json:"conditions"`
	Medications string `json:"medications"`
	Allergies   string `json:"allergies"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Status string `json:"status"` // "otp_required"
}

type VerifyOtpRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type VerifyOtpResponse struct {
	Token   string          `json:"token"`
	Profile ProfileResponse `json:"profile"`
}

type ProfileResponse struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Points      int    `json:"points"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Conditions  string `json:"conditions,omitempty"`
	Medications string `json:"medications,omitempty"`
	Allergies   string `json:"allergies,omitempty"`
}

// AuthClaims are the JWT claims carried by an authenticated session token.
type AuthClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

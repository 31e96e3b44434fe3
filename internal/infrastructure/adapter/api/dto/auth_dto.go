package dto

import (
	"time"

	"github.com/shoppro/storefront/internal/domain/entity"
)

// RegisterRequest represents the API request for creating an account
type RegisterRequest struct {
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Email        string `json:"email" binding:"omitempty,email"`
	ReferralCode string `json:"referralCode"`
}

// LoginRequest represents the API request for a password login.
// Admin is set by the admin console; the role check runs server-side.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Admin    bool   `json:"admin"`
}

// GoogleLoginRequest carries the ID token issued by Google sign-in
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// UserResponse is the public view of an account. Wallet amounts are
// returned both as raw whole-VND integers and as display strings.
type UserResponse struct {
	ID                uint64    `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email,omitempty"`
	Role              string    `json:"role"`
	RefCode           string    `json:"refCode"`
	ReferredBy        string    `json:"referredBy,omitempty"`
	DepositWallet     int64     `json:"depositWallet"`
	DepositDisplay    string    `json:"depositDisplay"`
	CommissionWallet  int64     `json:"commissionWallet"`
	CommissionDisplay string    `json:"commissionDisplay"`
	CreatedAt         time.Time `json:"createdAt"`
}

// SessionResponse is returned by all three login paths
type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// FromUser maps a user entity to its API representation
func FromUser(user *entity.User) UserResponse {
	return UserResponse{
		ID:                user.ID,
		Username:          user.Username,
		Email:             user.Email,
		Role:              string(user.Role),
		RefCode:           user.RefCode,
		ReferredBy:        user.ReferredBy,
		DepositWallet:     user.DepositWallet(),
		DepositDisplay:    entity.FormatVND(user.DepositWallet()),
		CommissionWallet:  user.CommissionWallet(),
		CommissionDisplay: entity.FormatVND(user.CommissionWallet()),
		CreatedAt:         user.CreatedAt,
	}
}

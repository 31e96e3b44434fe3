package session

import (
	"context"
	"strings"

	"github.com/shoppro/storefront/internal/domain/entity"
	errs "github.com/shoppro/storefront/internal/domain/error"
	"github.com/shoppro/storefront/internal/domain/port/event"
)

// RegisterRequest represents the input for creating a new account
type RegisterRequest struct {
	Username     string
	Password     string
	Email        string
	ReferralCode string // referrer's code, optional
}

// Register creates a new account and opens a session for it.
// A supplied referral code is resolved against existing users; a code
// that matches nobody is dropped and registration proceeds without a
// referrer.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || len(req.Password) < minPasswordLength {
		return nil, errs.NewAuthError(username, "username or password too short", errs.ErrInvalidCredentials)
	}

	referredBy := strings.TrimSpace(req.ReferralCode)
	if referredBy != "" {
		if _, err := s.userRepo.GetByRefCode(ctx, referredBy); err != nil {
			if !errs.IsNotFoundError(err) {
				return nil, err
			}
			s.logger.Warn("Referral code matched no user, ignoring", map[string]any{
				"username": username,
				"refCode":  referredBy,
			})
			referredBy = ""
		}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", map[string]any{"error": err.Error()})
		return nil, errs.ErrInternalServer
	}

	refCode, err := s.newRefCode(ctx)
	if err != nil {
		return nil, err
	}

	user, err := entity.NewUser(username, hash, strings.TrimSpace(req.Email), refCode, referredBy, entity.RoleUser, s.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errs.IsDuplicateUsernameError(err) {
			return nil, errs.ErrDuplicateUsername
		}
		s.logger.Error("Failed to create user", map[string]any{
			"username": username,
			"error":    err.Error(),
		})
		return nil, err
	}

	s.logger.Info("User registered", map[string]any{
		"userId":   user.ID,
		"username": user.Username,
		"referred": referredBy != "",
	})
	s.bus.Publish(event.Event{
		Kind:       event.KindUserRegistered,
		UserID:     user.ID,
		OccurredAt: s.timeProvider.Now(),
		Fields:     map[string]any{"username": user.Username},
	})

	return s.issueSession(user)
}

package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/shoppro/storefront/internal/domain/entity"
	errs "github.com/shoppro/storefront/internal/domain/error"
	"github.com/shoppro/storefront/internal/domain/port/event"
)

// usernameAttempts bounds the derived-username collision retry loop
const usernameAttempts = 5

// LoginWithGoogle authenticates through a Google ID token. A returning
// identity is matched by verified email; a first-time identity gets an
// account with no password hash and a fresh referral code.
func (s *Service) LoginWithGoogle(ctx context.Context, idToken string) (*Session, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, errs.ErrInvalidToken
	}

	identity, err := s.federated.VerifyIDToken(ctx, idToken)
	if err != nil {
		if errs.IsBackendUnavailableError(err) {
			return nil, err
		}
		s.logger.Warn("Google token rejected", map[string]any{"error": err.Error()})
		return nil, errs.ErrInvalidToken
	}
	if identity.Email == "" {
		return nil, errs.ErrInvalidToken
	}

	user, err := s.userRepo.GetByEmail(ctx, identity.Email)
	if err == nil {
		s.logger.Info("User logged in via Google", map[string]any{
			"userId": user.ID,
			"email":  identity.Email,
		})
		return s.issueSession(user)
	}
	if !errs.IsNotFoundError(err) {
		return nil, err
	}

	user, err = s.registerFederated(ctx, identity.Email, identity.Name)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered via Google", map[string]any{
		"userId": user.ID,
		"email":  identity.Email,
	})
	s.bus.Publish(event.Event{
		Kind:       event.KindUserRegistered,
		UserID:     user.ID,
		OccurredAt: s.timeProvider.Now(),
		Fields:     map[string]any{"username": user.Username, "federated": true},
	})

	return s.issueSession(user)
}

// registerFederated creates an account for a first-time Google identity.
// The username is derived from the email local part; on collision a
// numeric suffix is appended.
func (s *Service) registerFederated(ctx context.Context, email, name string) (*entity.User, error) {
	base := strings.SplitN(email, "@", 2)[0]
	if base == "" {
		base = name
	}
	if base == "" {
		return nil, errs.ErrInvalidCredentials
	}

	refCode, err := s.newRefCode(ctx)
	if err != nil {
		return nil, err
	}

	username := base
	for attempt := 0; attempt < usernameAttempts; attempt++ {
		user, err := entity.NewUser(username, "", email, refCode, "", entity.RoleUser, s.timeProvider)
		if err != nil {
			return nil, err
		}

		err = s.userRepo.Create(ctx, user)
		if err == nil {
			return user, nil
		}
		if !errs.IsDuplicateUsernameError(err) {
			return nil, err
		}
		username = fmt.Sprintf("%s%d", base, attempt+1)
	}

	return nil, errs.ErrDuplicateUsername
}

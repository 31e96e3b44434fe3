package session

import (
	"context"
	"strings"

	errs "github.com/shoppro/storefront/internal/domain/error"
)

// Login authenticates a locally registered account by password.
// Unknown usernames and wrong passwords return the same error so the
// response does not reveal which accounts exist. Accounts created through
// federated sign-in carry no password hash and cannot log in this way.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errs.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, errs.NewAuthError(username, "unknown username", errs.ErrInvalidCredentials)
		}
		return nil, err
	}

	if user.PasswordHash == "" {
		return nil, errs.NewAuthError(username, "federated-only account", errs.ErrInvalidCredentials)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.logger.Warn("Password mismatch", map[string]any{"username": username})
		return nil, errs.NewAuthError(username, "password mismatch", errs.ErrInvalidCredentials)
	}

	s.logger.Info("User logged in", map[string]any{
		"userId":   user.ID,
		"username": user.Username,
	})

	return s.issueSession(user)
}

package migration

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/shoppro/storefront/internal/domain/entity"
	errs "github.com/shoppro/storefront/internal/domain/error"
	authport "github.com/shoppro/storefront/internal/domain/port/auth"
	coreport "github.com/shoppro/storefront/internal/domain/port/core"
	"github.com/shoppro/storefront/internal/domain/port/persistence"
)

// SeedAdminUser creates the admin account named in configuration if it
// does not exist yet. The password is hashed like any other account's;
// there are no built-in credentials, so skipping the configuration
// simply leaves the shop without an admin.
func SeedAdminUser(
	ctx context.Context,
	userRepo persistence.UserRepository,
	hasher authport.PasswordHasher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	username, password, email string,
) error {
	if username == "" {
		logger.Warn("No admin account configured, skipping seed", nil)
		return nil
	}

	existing, err := userRepo.GetByUsername(ctx, username)
	if err == nil {
		if !existing.IsAdmin() {
			existing.Role = entity.RoleAdmin
			if err := userRepo.Update(ctx, existing); err != nil {
				return err
			}
			logger.Info("Promoted existing account to admin", map[string]any{
				"username": username,
			})
		}
		return nil
	}
	if !errs.IsNotFoundError(err) {
		return err
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	refCode := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	admin, err := entity.NewUser(username, hash, email, refCode, "", entity.RoleAdmin, timeProvider)
	if err != nil {
		return err
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}

	logger.Info("Admin account seeded", map[string]any{
		"userId":   admin.ID,
		"username": username,
	})
	return nil
}

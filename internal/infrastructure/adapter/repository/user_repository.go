package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shoppro/storefront/internal/domain/entity"
	errs "github.com/shoppro/storefront/internal/domain/error"
	coreport "github.com/shoppro/storefront/internal/domain/port/core"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/model"
)

// UserRepository implements the user repository interface using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// userModelToEntity converts a user model to an entity
func userModelToEntity(userModel *model.User) *entity.User {
	user := &entity.User{
		ID:           userModel.ID,
		Username:     userModel.Username,
		PasswordHash: userModel.PasswordHash,
		Email:        userModel.Email,
		Role:         entity.Role(userModel.Role),
		RefCode:      userModel.RefCode,
		ReferredBy:   userModel.ReferredBy,
		CreatedAt:    userModel.CreatedAt,
		UpdatedAt:    userModel.UpdatedAt,
	}
	user.SetWallets(userModel.DepositWallet, userModel.CommissionWallet)
	return user
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrUserNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"userId": userID,
		"error":  err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateUsername
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// getBy loads a single user by an arbitrary condition
func (r *UserRepository) getBy(ctx context.Context, operation, query string, arg any) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Where(query, arg).First(&userModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError(operation, result.Error, 0)
	}
	return userModelToEntity(&userModel), nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error, id)
	}
	return userModelToEntity(&userModel), nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getBy(ctx, "getting user by username", "username = ?", username)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, "getting user by email", "email = ?", email)
}

// GetByRefCode retrieves the user owning a referral code
func (r *UserRepository) GetByRefCode(ctx context.Context, refCode string) (*entity.User, error) {
	return r.getBy(ctx, "getting user by referral code", "ref_code = ?", refCode)
}

// Create creates a new user and fills in its assigned ID
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := model.User{
		Username:         user.Username,
		PasswordHash:     user.PasswordHash,
		Email:            user.Email,
		Role:             string(user.Role),
		DepositWallet:    user.DepositWallet(),
		CommissionWallet: user.CommissionWallet(),
		RefCode:          user.RefCode,
		ReferredBy:       user.ReferredBy,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&userModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating user", result.Error, 0)
	}

	user.ID = userModel.ID
	r.logger.Info("User created", map[string]any{
		"userId":   user.ID,
		"username": user.Username,
	})
	return nil
}

// Update persists user fields other than wallet balances.
// Balances only move through AdjustWallets.
func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"username":      user.Username,
			"password_hash": user.PasswordHash,
			"email":         user.Email,
			"role":          string(user.Role),
			"updated_at":    r.timeProvider.Now(),
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating user", result.Error, user.ID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// List returns all users ordered by creation time
func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	var userModels []model.User
	result := r.db.WithContext(ctx).Order("created_at ASC").Find(&userModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing users", result.Error, 0)
	}

	users := make([]*entity.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userModelToEntity(&userModels[i]))
	}
	return users, nil
}

// AdjustWallets applies wallet deltas atomically under a row lock.
// The committed balance is re-read inside the lock and the deltas run
// through the entity's wallet rules, so a stale caller can never
// overdraw the deposit wallet.
func (r *UserRepository) AdjustWallets(ctx context.Context, userID uint64, depositDelta, commissionDelta int64) (*entity.User, error) {
	var user *entity.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx
		// sqlite has no FOR UPDATE; its single-writer lock covers us there
		if tx.Dialector.Name() == "postgres" {
			query = tx.Set("gorm:query_option", "FOR UPDATE")
		}

		var userModel model.User
		result := query.First(&userModel, userID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return errs.ErrUserNotFound
			}
			return result.Error
		}

		user = userModelToEntity(&userModel)
		if err := r.applyDeltas(user, depositDelta, commissionDelta); err != nil {
			if errs.IsInsufficientFundsError(err) {
				r.logger.Warn("Insufficient funds for wallet debit", map[string]any{
					"userId":  userID,
					"price":   -depositDelta,
					"balance": userModel.DepositWallet,
				})
			}
			return err
		}

		result = tx.Model(&userModel).Updates(map[string]interface{}{
			"deposit_wallet":    user.DepositWallet(),
			"commission_wallet": user.CommissionWallet(),
			"updated_at":        user.UpdatedAt,
		})
		if result.Error != nil {
			return result.Error
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) || errors.Is(err, errs.ErrInsufficientFunds) || errors.Is(err, errs.ErrInvalidAmount) {
			return nil, err
		}
		if r.errorClassifier.IsLockError(err) {
			r.logger.Warn("Wallet row contended, adjustment aborted", map[string]any{
				"userId": userID,
				"error":  err.Error(),
			})
		}
		return nil, r.handleDatabaseError("adjusting wallets", err, userID)
	}

	r.logger.Info("Wallets adjusted", map[string]any{
		"userId":          userID,
		"depositDelta":    depositDelta,
		"commissionDelta": commissionDelta,
		"deposit":         user.DepositWallet(),
		"commission":      user.CommissionWallet(),
	})

	return user, nil
}

// applyDeltas runs wallet deltas through the entity mutators, which
// hold the deposit floor and positive-amount rules
func (r *UserRepository) applyDeltas(user *entity.User, depositDelta, commissionDelta int64) error {
	switch {
	case depositDelta < 0:
		if err := user.Debit(-depositDelta, r.timeProvider); err != nil {
			return err
		}
	case depositDelta > 0:
		if err := user.CreditDeposit(depositDelta, r.timeProvider); err != nil {
			return err
		}
	}
	if commissionDelta > 0 {
		return user.CreditCommission(commissionDelta, r.timeProvider)
	}
	return nil
}

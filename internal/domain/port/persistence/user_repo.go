package persistence

import (
	"context"

	"github.com/shoppro/storefront/internal/domain/entity"
)

// UserRepository defines essential methods to interact with user accounts
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByUsername retrieves a user by username
	//
	// Possible errors:
	// - ErrUserNotFound, ErrDatabaseConnection
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	// GetByEmail retrieves a user by email. Used by federated login to
	// recognize a returning identity.
	//
	// Possible errors:
	// - ErrUserNotFound, ErrDatabaseConnection
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// GetByRefCode retrieves the user owning a referral code
	//
	// Possible errors:
	// - ErrUserNotFound, ErrDatabaseConnection
	GetByRefCode(ctx context.Context, refCode string) (*entity.User, error)

	// Create creates a new user and fills in its assigned ID
	//
	// Possible errors:
	// - ErrDuplicateUsername: If username or refCode is already taken
	// - ErrDatabaseConnection
	Create(ctx context.Context, user *entity.User) error

	// Update persists user fields other than wallet balances
	//
	// Possible errors:
	// - ErrUserNotFound, ErrDatabaseConnection
	Update(ctx context.Context, user *entity.User) error

	// List returns all users. Admin console surface.
	List(ctx context.Context) ([]*entity.User, error)

	// AdjustWallets applies deltas to both wallets atomically under a row
	// lock, re-validating the committed deposit balance at commit time.
	// A negative depositDelta that would overdraw the wallet fails with
	// ErrInsufficientFunds and leaves both wallets untouched. This is the
	// only way wallet balances change; callers never write a client-computed
	// absolute balance.
	//
	// Possible errors:
	// - ErrUserNotFound, ErrInsufficientFunds, ErrDatabaseConnection
	AdjustWallets(ctx context.Context, userID uint64, depositDelta, commissionDelta int64) (*entity.User, error)
}

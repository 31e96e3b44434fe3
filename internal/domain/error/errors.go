package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientFunds   = 4001
	CodeInvalidAmount       = 4002
	CodeInvalidCredentials  = 4010
	CodeAdminRequired       = 4030
	CodeUserNotFound        = 4040
	CodeProductNotFound     = 4041
	CodeOrderNotFound       = 4042
	CodeDuplicateUsername   = 4091
	CodeInvalidProductDates = 4220
	CodeInvalidRefCode      = 4221

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeBackendUnavailable = 5030
)

// Base error types
var (
	// ErrInsufficientFunds is returned when a buyer's deposit wallet cannot cover a price
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount is returned when a monetary amount is malformed or negative
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidCredentials is returned when a username/password pair does not match
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAdminRequired is returned when a non-admin account attempts an admin login or operation
	ErrAdminRequired = errors.New("admin role required")

	// ErrDuplicateUsername is returned when registering a username that is already taken
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrInvalidProductDates is returned when a product's validity window is empty or reversed
	ErrInvalidProductDates = errors.New("product end date must be after start date")

	// ErrInvalidRefCode is returned when a referral code cannot be generated
	ErrInvalidRefCode = errors.New("invalid referral code")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrProductNotFound is returned when the requested product doesn't exist
	ErrProductNotFound = errors.New("product not found")

	// ErrOrderNotFound is returned when the requested order doesn't exist
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidToken is returned when a session token fails validation
	ErrInvalidToken = errors.New("invalid session token")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrBackendUnavailable is returned when the persistence store or the
	// federated identity provider is not configured or not reachable
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidToken):
		return CodeInvalidCredentials
	case errors.Is(err, ErrAdminRequired):
		return CodeAdminRequired
	case errors.Is(err, ErrDuplicateUsername):
		return CodeDuplicateUsername
	case errors.Is(err, ErrInvalidProductDates):
		return CodeInvalidProductDates
	case errors.Is(err, ErrInvalidRefCode):
		return CodeInvalidRefCode
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrProductNotFound):
		return CodeProductNotFound
	case errors.Is(err, ErrOrderNotFound):
		return CodeOrderNotFound
	case errors.Is(err, ErrBackendUnavailable), errors.Is(err, ErrDatabaseConnection):
		return CodeBackendUnavailable
	default:
		return CodeInternalServer
	}
}

// InsufficientFundsError carries the balance context of a rejected purchase
type InsufficientFundsError struct {
	UserID  uint64
	Price   int64
	Balance int64
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for user %d: price %d, deposit wallet %d",
		e.UserID, e.Price, e.Balance)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_funds",
		"user_id":    e.UserID,
		"price":      e.Price,
		"balance":    e.Balance,
		"error_code": CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a detailed insufficient funds error
func NewInsufficientFundsError(userID uint64, price, balance int64) error {
	return &InsufficientFundsError{
		UserID:  userID,
		Price:   price,
		Balance: balance,
	}
}

// PurchaseError represents a failure while executing the purchase flow
type PurchaseError struct {
	UserID    uint64
	ProductID uint64
	Reason    string
	Err       error
}

// Error implements the error interface
func (e *PurchaseError) Error() string {
	return fmt.Sprintf("purchase failed for user %d, product %d: %s - %v",
		e.UserID, e.ProductID, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *PurchaseError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *PurchaseError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "purchase_error",
		"user_id":    e.UserID,
		"product_id": e.ProductID,
		"reason":     e.Reason,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewPurchaseError creates a detailed purchase error
func NewPurchaseError(userID, productID uint64, reason string, err error) error {
	return &PurchaseError{
		UserID:    userID,
		ProductID: productID,
		Reason:    reason,
		Err:       err,
	}
}

// AuthError represents an authentication or authorization failure
type AuthError struct {
	Username string
	Reason   string
	Err      error
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed for %q: %s - %v", e.Username, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *AuthError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *AuthError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "auth_error",
		"username":   e.Username,
		"reason":     e.Reason,
		"error_code": ErrorCode(e.Err),
	}
}

// NewAuthError creates a detailed authentication error
func NewAuthError(username, reason string, err error) error {
	return &AuthError{Username: username, Reason: reason, Err: err}
}

// IsInsufficientFundsError checks if the error is related to insufficient funds
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsDuplicateUsernameError checks if the error is a duplicate username error
func IsDuplicateUsernameError(err error) bool {
	return errors.Is(err, ErrDuplicateUsername)
}

// IsAuthFailure checks if the error is any credential or role failure
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrAdminRequired)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound)
}

// IsBackendUnavailableError checks if the error indicates an unreachable collaborator
func IsBackendUnavailableError(err error) bool {
	return errors.Is(err, ErrBackendUnavailable) ||
		errors.Is(err, ErrDatabaseConnection)
}

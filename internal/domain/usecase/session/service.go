package session

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/shoppro/storefront/internal/domain/entity"
	errs "github.com/shoppro/storefront/internal/domain/error"
	authport "github.com/shoppro/storefront/internal/domain/port/auth"
	coreport "github.com/shoppro/storefront/internal/domain/port/core"
	"github.com/shoppro/storefront/internal/domain/port/event"
	"github.com/shoppro/storefront/internal/domain/port/persistence"
)

// Minimum accepted password length for locally registered accounts
const minPasswordLength = 6

// refCodeAttempts bounds the referral code collision retry loop
const refCodeAttempts = 5

// Service handles account registration, login and session verification
type Service struct {
	userRepo     persistence.UserRepository
	tokenIssuer  authport.TokenIssuer
	hasher       authport.PasswordHasher
	federated    authport.FederatedVerifier
	timeProvider coreport.TimeProvider
	bus          event.Bus
	logger       coreport.Logger
}

// NewService creates a new session Service
func NewService(
	userRepo persistence.UserRepository,
	tokenIssuer authport.TokenIssuer,
	hasher authport.PasswordHasher,
	federated authport.FederatedVerifier,
	timeProvider coreport.TimeProvider,
	bus event.Bus,
	logger coreport.Logger,
) *Service {
	return &Service{
		userRepo:     userRepo,
		tokenIssuer:  tokenIssuer,
		hasher:       hasher,
		federated:    federated,
		timeProvider: timeProvider,
		bus:          bus,
		logger:       logger,
	}
}

// Session pairs an authenticated user with its issued token
type Session struct {
	User  *entity.User
	Token string
}

// Authenticate verifies a session token and reloads the account it names.
// The role inside the token is never trusted; authorization decisions use
// the freshly loaded user.
func (s *Service) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.tokenIssuer.Verify(token)
	if err != nil {
		return nil, errs.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, errs.ErrInvalidToken
		}
		return nil, err
	}

	return user, nil
}

// newRefCode generates a short referral code and verifies it is unused.
// Codes are eight hex characters, so collisions are rare but possible;
// the loop retries a few times before giving up.
func (s *Service) newRefCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < refCodeAttempts; attempt++ {
		code := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]

		_, err := s.userRepo.GetByRefCode(ctx, code)
		if err == nil {
			continue
		}
		if errs.IsNotFoundError(err) {
			return code, nil
		}
		return "", err
	}
	return "", errs.ErrInternalServer
}

// issueSession signs a token for the user and assembles the session
func (s *Service) issueSession(user *entity.User) (*Session, error) {
	token, err := s.tokenIssuer.Issue(user)
	if err != nil {
		s.logger.Error("Failed to issue session token", map[string]any{
			"userId": user.ID,
			"error":  err.Error(),
		})
		return nil, errs.ErrInternalServer
	}

	return &Session{User: user, Token: token}, nil
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoppro/storefront/internal/domain/entity"
	domainerr "github.com/shoppro/storefront/internal/domain/error"
	coreport "github.com/shoppro/storefront/internal/domain/port/core"
	sessionUseCase "github.com/shoppro/storefront/internal/domain/usecase/session"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/api/dto"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/api/middleware"
)

// SessionService is the slice of the session use case the handler needs
type SessionService interface {
	Register(ctx context.Context, req sessionUseCase.RegisterRequest) (*sessionUseCase.Session, error)
	Login(ctx context.Context, username, password string) (*sessionUseCase.Session, error)
	LoginWithGoogle(ctx context.Context, idToken string) (*sessionUseCase.Session, error)
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// SessionHandler handles account creation and login HTTP requests
type SessionHandler struct {
	sessions SessionService
	logger   coreport.Logger
}

// NewSessionHandler creates a new session handler instance
func NewSessionHandler(sessions SessionService, logger coreport.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

// Register handles the POST /api/auth/register endpoint
func (h *SessionHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := h.sessions.Register(c.Request.Context(), sessionUseCase.RegisterRequest{
		Username:     req.Username,
		Password:     req.Password,
		Email:        req.Email,
		ReferralCode: req.ReferralCode,
	})
	if err != nil {
		h.logger.Warn("Registration rejected", map[string]any{
			"username": req.Username,
			"code":     domainerr.ErrorCode(err),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.SessionResponse{
		Token: session.Token,
		User:  dto.FromUser(session.User),
	})
}

// Login handles the POST /api/auth/login endpoint
func (h *SessionHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := h.sessions.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	// Console logins additionally require the admin role. This is a
	// distinct failure from a bad password.
	if req.Admin && !session.User.IsAdmin() {
		respondError(c, domainerr.ErrAdminRequired)
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{
		Token: session.Token,
		User:  dto.FromUser(session.User),
	})
}

// LoginWithGoogle handles the POST /api/auth/google endpoint.
// First-time identities get an account created on the fly.
func (h *SessionHandler) LoginWithGoogle(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := h.sessions.LoginWithGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{
		Token: session.Token,
		User:  dto.FromUser(session.User),
	})
}

// Me handles the GET /api/auth/me endpoint
func (h *SessionHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domainerr.ErrInvalidToken)
		return
	}

	c.JSON(http.StatusOK, dto.FromUser(user))
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/shoppro/storefront/internal/domain/error"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/api/dto"
)

// httpStatus maps a domain error to its HTTP status code
func httpStatus(err error) int {
	switch {
	case errors.Is(err, domainerr.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, domainerr.ErrInvalidCredentials), errors.Is(err, domainerr.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domainerr.ErrAdminRequired):
		return http.StatusForbidden
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrDuplicateUsername):
		return http.StatusConflict
	case errors.Is(err, domainerr.ErrInvalidProductDates), errors.Is(err, domainerr.ErrInvalidRefCode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainerr.ErrInvalidAmount), errors.Is(err, domainerr.ErrInvalidRequest):
		return http.StatusBadRequest
	case domainerr.IsBackendUnavailableError(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage picks what the client is told. Server-side failures are
// not echoed back verbatim.
func errorMessage(err error, status int) string {
	if status >= http.StatusInternalServerError {
		if status == http.StatusServiceUnavailable {
			return "Service temporarily unavailable"
		}
		return "Internal server error"
	}
	return err.Error()
}

// respondError writes a domain error as a standardized JSON response
func respondError(c *gin.Context, err error) {
	status := httpStatus(err)
	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: errorMessage(err, status),
	})
}

// respondBindError writes a request-format failure
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
		Message: "Invalid request format: " + err.Error(),
	})
}

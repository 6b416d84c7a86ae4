package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/rewardhub/rewardhub/internal/domain/errors"
	"github.com/rewardhub/rewardhub/internal/server/http/dto"
	"github.com/rewardhub/rewardhub/internal/server/http/middleware"
)

// CurrentUserID extracts the authenticated user identifier from context.
func CurrentUserID(c *gin.Context) string {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

// CurrentEmail extracts the authenticated user's email from context.
func CurrentEmail(c *gin.Context) string {
	val, ok := c.Get(middleware.UserEmailContextKey)
	if !ok {
		return ""
	}
	email, _ := val.(string)
	return email
}

// IsAdmin reports whether the request carries an administrator token.
func IsAdmin(c *gin.Context) bool {
	val, ok := c.Get(middleware.UserAdminContextKey)
	if !ok {
		return false
	}
	admin, _ := val.(bool)
	return admin
}

// respondError translates domain errors into HTTP statuses with a JSON body.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domainErrors.ErrInvalidArgument), errors.Is(err, domainErrors.ErrBelowMinimum):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrInsufficientBalance):
		status = http.StatusPaymentRequired
	case errors.Is(err, domainErrors.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, domainErrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domainErrors.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, domainErrors.ErrTimeout):
		status = http.StatusGatewayTimeout
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: err.Error()})
}

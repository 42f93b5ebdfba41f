package handlers

import (
	"errors"
	"net/http"

	"jobportal/internal/logger"
	"jobportal/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps the service error taxonomy to HTTP status codes and default messages.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest, "Validation failed"
	case errors.Is(err, services.ErrAuthentication):
		return http.StatusUnauthorized, "Please log in to continue"
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden, "You are not allowed to perform this action"
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict, "Conflict"
	case errors.Is(err, services.ErrDependency):
		return http.StatusBadGateway, "An upstream service failed, please try again"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// respondError writes the failure envelope. Causes are logged, never returned to the client.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status, message := statusFor(err)
	body := gin.H{"success": false}

	var verr *services.ValidationError
	var domainErr *services.Error
	switch {
	case errors.As(err, &verr):
		message = verr.Message
		if len(verr.Fields) > 0 {
			body["details"] = verr.Fields
		}
	case errors.As(err, &domainErr):
		message = domainErr.Message
	}
	body["message"] = message

	_ = c.Error(err)
	l := logger.WithRequestID(c.Request.Context(), log)
	if status >= http.StatusInternalServerError {
		l.Error("request failed", zap.Int("status", status), zap.Error(err))
	} else {
		l.Debug("request rejected", zap.Int("status", status), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, body)
}

// respondBadRequest is used for input the service never sees: malformed JSON, bad path ids.
func respondBadRequest(c *gin.Context, message string, details map[string]string) {
	body := gin.H{"success": false, "message": message}
	if len(details) > 0 {
		body["details"] = details
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}

// respondOK writes the success envelope with payload merged in.
func respondOK(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

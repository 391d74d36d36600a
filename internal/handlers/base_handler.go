package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sajjaly-pro/school-service/internal/models"
	"github.com/sajjaly-pro/school-service/internal/repositories"
	"github.com/sajjaly-pro/school-service/internal/services"
	"github.com/sajjaly-pro/school-service/internal/utils"
	"github.com/sajjaly-pro/school-service/internal/validator"
)

// BaseHandler carries the logger and the shared error mapping.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string) {
	utils.FromContext(c.Request.Context(), h.logger).Debug(msg,
		"method", c.Request.Method,
		"path", c.FullPath(),
	)
}

// handleServiceError maps service errors onto the {error: ...} wire format.
// Store failures are logged and returned as a generic message; raw store
// error text never reaches the client.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case validator.IsValidationError(err):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid credentials"})
	case errors.Is(err, services.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid or expired token"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "forbidden"})
	case repositories.IsDuplicateError(err):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "duplicate entry"})
	default:
		utils.FromContext(c.Request.Context(), h.logger).Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
	}
}

// badRequest writes a 400 with the given message.
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msg})
}

// pathID parses the :id (or named) path parameter as an entity id. The
// second return is false after a response has already been written.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sajjaly-pro/school-service/internal/models"
	"github.com/sajjaly-pro/school-service/internal/services"
	"github.com/sajjaly-pro/school-service/internal/utils"
)

// AuthHandler exposes the three login flows. Admins authenticate with a
// username and password, schools and students with their issued codes.
type AuthHandler struct {
	BaseHandler
	auth services.AuthService
}

func NewAuthHandler(auth services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		auth:        auth,
	}
}

// AdminLogin handles POST /api/admin/login.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	h.LogRequest(c, "admin login")

	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	resp, err := h.auth.AdminLogin(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SchoolLogin handles POST /api/school/login.
func (h *AuthHandler) SchoolLogin(c *gin.Context) {
	h.LogRequest(c, "school login")

	var req models.CodeLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	resp, err := h.auth.SchoolLogin(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StudentLogin handles POST /api/student/login.
func (h *AuthHandler) StudentLogin(c *gin.Context) {
	h.LogRequest(c, "student login")

	var req models.CodeLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	resp, err := h.auth.StudentLogin(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sajjaly-pro/school-service/internal/models"
	"github.com/sajjaly-pro/school-service/internal/services"
	"github.com/sajjaly-pro/school-service/internal/utils"
)

// SubjectHandler manages the subject list each school grades against.
type SubjectHandler struct {
	BaseHandler
	subjects services.SubjectService
}

func NewSubjectHandler(subjects services.SubjectService, logger utils.Logger) *SubjectHandler {
	return &SubjectHandler{
		BaseHandler: NewBaseHandler(logger),
		subjects:    subjects,
	}
}

// ListBySchool handles GET /api/schools/:id/subjects.
func (h *SubjectHandler) ListBySchool(c *gin.Context) {
	h.LogRequest(c, "list subjects")

	schoolID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !schoolScopeAllowed(c, schoolID) {
		h.handleServiceError(c, services.ErrForbidden)
		return
	}

	subjects, err := h.subjects.ListBySchool(c.Request.Context(), schoolID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, subjects)
}

// Create handles POST /api/schools/:id/subjects.
func (h *SubjectHandler) Create(c *gin.Context) {
	h.LogRequest(c, "create subject")

	schoolID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !schoolScopeAllowed(c, schoolID) {
		h.handleServiceError(c, services.ErrForbidden)
		return
	}

	var req models.SubjectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	subject, err := h.subjects.Create(c.Request.Context(), schoolID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subject)
}

// Update handles PUT /api/subjects/:id.
func (h *SubjectHandler) Update(c *gin.Context) {
	h.LogRequest(c, "update subject")

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.SubjectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	updated, err := h.subjects.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.UpdatedResponse{Updated: updated})
}

// Delete handles DELETE /api/subjects/:id.
func (h *SubjectHandler) Delete(c *gin.Context) {
	h.LogRequest(c, "delete subject")

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.subjects.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.DeletedResponse{Deleted: deleted})
}

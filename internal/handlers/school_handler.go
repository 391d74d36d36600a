package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sajjaly-pro/school-service/internal/models"
	"github.com/sajjaly-pro/school-service/internal/services"
	"github.com/sajjaly-pro/school-service/internal/utils"
)

// SchoolHandler exposes the admin-facing school CRUD plus the roster export.
type SchoolHandler struct {
	BaseHandler
	schools services.SchoolService
}

func NewSchoolHandler(schools services.SchoolService, logger utils.Logger) *SchoolHandler {
	return &SchoolHandler{
		BaseHandler: NewBaseHandler(logger),
		schools:     schools,
	}
}

// List handles GET /api/schools.
func (h *SchoolHandler) List(c *gin.Context) {
	h.LogRequest(c, "list schools")

	schools, err := h.schools.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, schools)
}

// Get handles GET /api/schools/:id.
func (h *SchoolHandler) Get(c *gin.Context) {
	h.LogRequest(c, "get school")

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	school, err := h.schools.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, school)
}

// Create handles POST /api/schools.
func (h *SchoolHandler) Create(c *gin.Context) {
	h.LogRequest(c, "create school")

	var req models.SchoolCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	school, err := h.schools.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, school)
}

// Update handles PUT /api/schools/:id.
func (h *SchoolHandler) Update(c *gin.Context) {
	h.LogRequest(c, "update school")

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.SchoolUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	updated, err := h.schools.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.UpdatedResponse{Updated: updated})
}

// Delete handles DELETE /api/schools/:id. The school's students and subjects
// go with it.
func (h *SchoolHandler) Delete(c *gin.Context) {
	h.LogRequest(c, "delete school")

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.schools.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.DeletedResponse{Deleted: deleted})
}

// ExportRoster handles GET /api/schools/:id/students/export and streams an
// XLSX workbook of the school's students.
func (h *SchoolHandler) ExportRoster(c *gin.Context) {
	h.LogRequest(c, "export roster")

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	data, filename, err := h.schools.ExportRoster(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

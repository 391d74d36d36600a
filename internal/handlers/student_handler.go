package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sajjaly-pro/school-service/internal/models"
	"github.com/sajjaly-pro/school-service/internal/services"
	"github.com/sajjaly-pro/school-service/internal/utils"
)

// StudentHandler exposes student management under a school plus the
// student-level record and report endpoints.
type StudentHandler struct {
	BaseHandler
	students services.StudentService
	reports  services.ReportService
}

func NewStudentHandler(students services.StudentService, reports services.ReportService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		students:    students,
		reports:     reports,
	}
}

// schoolScopeAllowed reports whether the session may act on the given school.
// Admin sessions may act on any school; school sessions only on their own.
func schoolScopeAllowed(c *gin.Context, schoolID uint) bool {
	claims := sessionClaims(c)
	if claims == nil {
		return false
	}
	return claims.Role == models.RoleAdmin || (claims.Role == models.RoleSchool && claims.ID == schoolID)
}

// ListBySchool handles GET /api/schools/:id/students.
func (h *StudentHandler) ListBySchool(c *gin.Context) {
	h.LogRequest(c, "list students")

	schoolID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !schoolScopeAllowed(c, schoolID) {
		h.handleServiceError(c, services.ErrForbidden)
		return
	}

	students, err := h.students.ListBySchool(c.Request.Context(), schoolID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

// Create handles POST /api/schools/:id/students.
func (h *StudentHandler) Create(c *gin.Context) {
	h.LogRequest(c, "create student")

	schoolID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !schoolScopeAllowed(c, schoolID) {
		h.handleServiceError(c, services.ErrForbidden)
		return
	}

	var req models.StudentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	student, err := h.students.Create(c.Request.Context(), schoolID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, student)
}

// Get handles GET /api/students/:id.
func (h *StudentHandler) Get(c *gin.Context) {
	h.LogRequest(c, "get student")

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	student, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// Update handles PUT /api/students/:id.
func (h *StudentHandler) Update(c *gin.Context) {
	h.LogRequest(c, "update student")

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.StudentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	updated, err := h.students.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.UpdatedResponse{Updated: updated})
}

// UpdateRecords handles PUT /api/students/:id/detailed, replacing the
// embedded score and attendance records without touching the profile.
func (h *StudentHandler) UpdateRecords(c *gin.Context) {
	h.LogRequest(c, "update student records")

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.StudentRecordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	updated, err := h.students.UpdateRecords(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.UpdatedResponse{Updated: updated})
}

// Delete handles DELETE /api/students/:id.
func (h *StudentHandler) Delete(c *gin.Context) {
	h.LogRequest(c, "delete student")

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.students.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.DeletedResponse{Deleted: deleted})
}

// Report handles GET /api/students/:id/report. Student sessions may only
// request their own report.
func (h *StudentHandler) Report(c *gin.Context) {
	h.LogRequest(c, "student report")

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	claims := sessionClaims(c)
	if claims != nil && claims.Role == models.RoleStudent && claims.ID != id {
		h.handleServiceError(c, services.ErrForbidden)
		return
	}

	report, err := h.reports.GetStudentReport(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sajjaly-pro/school-service/internal/models"
	"github.com/sajjaly-pro/school-service/internal/repositories"
	"github.com/sajjaly-pro/school-service/internal/services"
	"github.com/sajjaly-pro/school-service/internal/utils"
)

// HandlerManager holds all HTTP handlers and wires them into the router.
type HandlerManager struct {
	auth     *AuthHandler
	schools  *SchoolHandler
	students *StudentHandler
	subjects *SubjectHandler

	services services.ServiceManager
	repo     repositories.Repository
	logger   utils.Logger
}

func NewHandlerManager(sm services.ServiceManager, repo repositories.Repository, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		auth:     NewAuthHandler(sm.Auth(), logger),
		schools:  NewSchoolHandler(sm.School(), logger),
		students: NewStudentHandler(sm.Student(), sm.Report(), logger),
		subjects: NewSubjectHandler(sm.Subject(), logger),
		services: sm,
		repo:     repo,
		logger:   logger,
	}
}

// SetupRoutes registers every endpoint. Login routes are public; everything
// else requires a session, with role guards per route group.
func (m *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", m.Health)

	api := router.Group("/api")

	api.POST("/admin/login", m.auth.AdminLogin)
	api.POST("/school/login", m.auth.SchoolLogin)
	api.POST("/student/login", m.auth.StudentLogin)

	authed := api.Group("")
	authed.Use(AuthMiddleware(m.services.Auth()))

	adminOnly := RequireRole(models.RoleAdmin)
	adminOrSchool := RequireRole(models.RoleAdmin, models.RoleSchool)

	schools := authed.Group("/schools")
	{
		schools.GET("", adminOnly, m.schools.List)
		schools.POST("", adminOnly, m.schools.Create)
		schools.GET("/:id", adminOrSchool, m.schools.Get)
		schools.PUT("/:id", adminOnly, m.schools.Update)
		schools.DELETE("/:id", adminOnly, m.schools.Delete)

		schools.GET("/:id/students", adminOrSchool, m.students.ListBySchool)
		schools.POST("/:id/students", adminOrSchool, m.students.Create)
		schools.GET("/:id/students/export", adminOrSchool, m.schools.ExportRoster)

		schools.GET("/:id/subjects", adminOrSchool, m.subjects.ListBySchool)
		schools.POST("/:id/subjects", adminOrSchool, m.subjects.Create)
	}

	students := authed.Group("/students")
	{
		students.GET("/:id", adminOrSchool, m.students.Get)
		students.PUT("/:id", adminOrSchool, m.students.Update)
		students.PUT("/:id/detailed", adminOrSchool, m.students.UpdateRecords)
		students.DELETE("/:id", adminOrSchool, m.students.Delete)

		// Any authenticated session; student sessions are limited to their
		// own report inside the handler.
		students.GET("/:id/report", m.students.Report)
	}

	subjects := authed.Group("/subjects")
	{
		subjects.PUT("/:id", adminOrSchool, m.subjects.Update)
		subjects.DELETE("/:id", adminOrSchool, m.subjects.Delete)
	}
}

// Health handles GET /health and reports store reachability.
func (m *HandlerManager) Health(c *gin.Context) {
	if err := m.repo.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sajjaly-pro/school-service/internal/models"
	"github.com/sajjaly-pro/school-service/internal/services"
)

// fakeAuthService accepts the token "good" and rejects everything else.
type fakeAuthService struct {
	claims *services.Claims
}

func (s *fakeAuthService) AdminLogin(ctx context.Context, req *models.AdminLoginRequest) (*models.AdminLoginResponse, error) {
	return nil, services.ErrInvalidCredentials
}

func (s *fakeAuthService) SchoolLogin(ctx context.Context, req *models.CodeLoginRequest) (*models.SchoolLoginResponse, error) {
	return nil, services.NewNotFoundError("school")
}

func (s *fakeAuthService) StudentLogin(ctx context.Context, req *models.CodeLoginRequest) (*models.StudentLoginResponse, error) {
	return nil, services.NewNotFoundError("student")
}

func (s *fakeAuthService) VerifyToken(token string) (*services.Claims, error) {
	if token == "good" && s.claims != nil {
		return s.claims, nil
	}
	return nil, services.ErrInvalidToken
}

func newGuardedRouter(auth services.AuthService, roles ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("")
	group.Use(AuthMiddleware(auth))
	if len(roles) > 0 {
		group.Use(RequireRole(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	auth := &fakeAuthService{claims: &services.Claims{ID: 1, Role: models.RoleAdmin}}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
	}

	router := newGuardedRouter(auth)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       models.UserRole
		allowed    []models.UserRole
		wantStatus int
	}{
		{"admin on admin route", models.RoleAdmin, []models.UserRole{models.RoleAdmin}, http.StatusOK},
		{"school on admin route", models.RoleSchool, []models.UserRole{models.RoleAdmin}, http.StatusForbidden},
		{"school on shared route", models.RoleSchool, []models.UserRole{models.RoleAdmin, models.RoleSchool}, http.StatusOK},
		{"student on shared route", models.RoleStudent, []models.UserRole{models.RoleAdmin, models.RoleSchool}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuthService{claims: &services.Claims{ID: 7, Role: tt.role}}
			router := newGuardedRouter(auth, tt.allowed...)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer good")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

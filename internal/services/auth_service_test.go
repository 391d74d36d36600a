package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sajjaly-pro/school-service/internal/models"
	"github.com/sajjaly-pro/school-service/internal/validator"
)

func newAuthService(repo *fakeRepository, config AuthConfig) AuthService {
	return NewAuthService(repo, testLogger(), validator.New(), config)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedAdmin(t *testing.T, repo *fakeRepository, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	err = repo.User().Create(context.Background(), &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
}

func TestAuthService_AdminLogin(t *testing.T) {
	repo := newFakeRepository()
	seedAdmin(t, repo, "admin", "admin123")
	svc := newAuthService(repo, AuthConfig{JWTSecret: "test-secret"})
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		resp, err := svc.AdminLogin(ctx, &models.AdminLoginRequest{Username: "admin", Password: "admin123"})
		if err != nil {
			t.Fatalf("AdminLogin() error = %v", err)
		}
		if resp.Token == "" {
			t.Error("AdminLogin() returned empty token")
		}
		if resp.User.Username != "admin" {
			t.Errorf("user = %q, want admin", resp.User.Username)
		}

		claims, err := svc.VerifyToken(resp.Token)
		if err != nil {
			t.Fatalf("VerifyToken() error = %v", err)
		}
		if claims.Role != models.RoleAdmin {
			t.Errorf("role claim = %q, want admin", claims.Role)
		}
		if claims.Username != "admin" {
			t.Errorf("username claim = %q, want admin", claims.Username)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.AdminLogin(ctx, &models.AdminLoginRequest{Username: "admin", Password: "nope"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := svc.AdminLogin(ctx, &models.AdminLoginRequest{Username: "ghost", Password: "admin123"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})

	// Empty fields are a malformed request, not a failed credential check.
	t.Run("missing password", func(t *testing.T) {
		_, err := svc.AdminLogin(ctx, &models.AdminLoginRequest{Username: "admin"})
		if !validator.IsValidationError(err) {
			t.Errorf("error = %v, want validation error", err)
		}
		if errors.Is(err, ErrInvalidCredentials) {
			t.Error("missing password must not report invalid credentials")
		}
	})

	t.Run("missing username", func(t *testing.T) {
		_, err := svc.AdminLogin(ctx, &models.AdminLoginRequest{Password: "admin123"})
		if !validator.IsValidationError(err) {
			t.Errorf("error = %v, want validation error", err)
		}
	})
}

func TestAuthService_SchoolLogin(t *testing.T) {
	repo := newFakeRepository()
	school := &models.School{Name: "Alpha", Code: "SCH-123456-ABC", StudyType: models.StudyMorning, Level: models.LevelPrimary, GenderType: models.GenderMixed}
	if err := repo.School().Create(context.Background(), school); err != nil {
		t.Fatalf("seed school: %v", err)
	}
	svc := newAuthService(repo, AuthConfig{JWTSecret: "test-secret"})
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		resp, err := svc.SchoolLogin(ctx, &models.CodeLoginRequest{Code: "SCH-123456-ABC"})
		if err != nil {
			t.Fatalf("SchoolLogin() error = %v", err)
		}
		claims, err := svc.VerifyToken(resp.Token)
		if err != nil {
			t.Fatalf("VerifyToken() error = %v", err)
		}
		if claims.Role != models.RoleSchool {
			t.Errorf("role claim = %q, want school", claims.Role)
		}
		if claims.Code != school.Code {
			t.Errorf("code claim = %q, want %q", claims.Code, school.Code)
		}
	})

	t.Run("unknown code is not found, never unauthorized", func(t *testing.T) {
		_, err := svc.SchoolLogin(ctx, &models.CodeLoginRequest{Code: "SCH-000000-XXX"})
		if !IsNotFound(err) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
		if errors.Is(err, ErrInvalidCredentials) {
			t.Error("code login must not report invalid credentials")
		}
	})

	t.Run("empty code is a validation error, not a lookup miss", func(t *testing.T) {
		_, err := svc.SchoolLogin(ctx, &models.CodeLoginRequest{})
		if !validator.IsValidationError(err) {
			t.Errorf("error = %v, want validation error", err)
		}
		if IsNotFound(err) {
			t.Error("empty code must not reach the code lookup")
		}
	})
}

func TestAuthService_StudentLogin(t *testing.T) {
	repo := newFakeRepository()
	ctx := context.Background()
	school := &models.School{Name: "Alpha", Code: "SCH-111111-AAA"}
	if err := repo.School().Create(ctx, school); err != nil {
		t.Fatalf("seed school: %v", err)
	}
	student := &models.Student{SchoolID: school.ID, FullName: "Sara", StudentCode: "STD-222222-BBB", Grade: "primary - 1", Room: "A"}
	if err := repo.Student().Create(ctx, student); err != nil {
		t.Fatalf("seed student: %v", err)
	}
	svc := newAuthService(repo, AuthConfig{JWTSecret: "test-secret"})

	t.Run("success carries school name", func(t *testing.T) {
		resp, err := svc.StudentLogin(ctx, &models.CodeLoginRequest{Code: "STD-222222-BBB"})
		if err != nil {
			t.Fatalf("StudentLogin() error = %v", err)
		}
		if resp.Student.SchoolName != "Alpha" {
			t.Errorf("school name = %q, want Alpha", resp.Student.SchoolName)
		}
		claims, err := svc.VerifyToken(resp.Token)
		if err != nil {
			t.Fatalf("VerifyToken() error = %v", err)
		}
		if claims.Role != models.RoleStudent || claims.Name != "Sara" {
			t.Errorf("claims = %+v, want student role and name Sara", claims)
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := svc.StudentLogin(ctx, &models.CodeLoginRequest{Code: "STD-000000-XXX"})
		if !IsNotFound(err) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("empty code is a validation error, not a lookup miss", func(t *testing.T) {
		_, err := svc.StudentLogin(ctx, &models.CodeLoginRequest{})
		if !validator.IsValidationError(err) {
			t.Errorf("error = %v, want validation error", err)
		}
		if IsNotFound(err) {
			t.Error("empty code must not reach the code lookup")
		}
	})
}

func TestAuthService_VerifyToken(t *testing.T) {
	repo := newFakeRepository()
	svc := newAuthService(repo, AuthConfig{JWTSecret: "test-secret"})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := svc.VerifyToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		seedAdmin(t, repo, "admin", "pw")
		resp, err := svc.AdminLogin(context.Background(), &models.AdminLoginRequest{Username: "admin", Password: "pw"})
		if err != nil {
			t.Fatalf("AdminLogin() error = %v", err)
		}
		other := newAuthService(repo, AuthConfig{JWTSecret: "different"})
		if _, err := other.VerifyToken(resp.Token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		repo2 := newFakeRepository()
		seedAdmin(t, repo2, "admin", "pw")
		short := newAuthService(repo2, AuthConfig{JWTSecret: "s", TokenTTL: time.Nanosecond})
		resp, err := short.AdminLogin(context.Background(), &models.AdminLoginRequest{Username: "admin", Password: "pw"})
		if err != nil {
			t.Fatalf("AdminLogin() error = %v", err)
		}
		time.Sleep(10 * time.Millisecond)
		if _, err := short.VerifyToken(resp.Token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})
}

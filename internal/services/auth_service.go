package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sajjaly-pro/school-service/internal/models"
	"github.com/sajjaly-pro/school-service/internal/repositories"
	"github.com/sajjaly-pro/school-service/internal/validator"
)

// Claims are the session token contents. Role governs which endpoints the
// token may call; Code is set for school and student sessions, Username for
// admin sessions.
type Claims struct {
	ID       uint            `json:"id"`
	Username string          `json:"username,omitempty"`
	Code     string          `json:"code,omitempty"`
	Name     string          `json:"name,omitempty"`
	Role     models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// AuthConfig carries the token signing parameters.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type authService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	config    AuthConfig
}

func NewAuthService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, config AuthConfig) AuthService {
	if config.TokenTTL <= 0 {
		config.TokenTTL = 24 * time.Hour
	}
	return &authService{
		repo:      repo,
		logger:    logger,
		validator: v,
		config:    config,
	}
}

// AdminLogin verifies username and password against the stored bcrypt hash.
// A missing user and a wrong password produce the same error.
func (s *authService) AdminLogin(ctx context.Context, req *models.AdminLoginRequest) (*models.AdminLoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByUsername(ctx, req.Username, models.RoleAdmin)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("admin lookup: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(Claims{
		ID:       user.ID,
		Username: user.Username,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("admin logged in", "user_id", user.ID)
	return &models.AdminLoginResponse{Token: token, User: user}, nil
}

// SchoolLogin exchanges a school code for a session; no password is involved.
func (s *authService) SchoolLogin(ctx context.Context, req *models.CodeLoginRequest) (*models.SchoolLoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	school, err := s.repo.School().GetByCode(ctx, req.Code)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("school")
		}
		return nil, fmt.Errorf("school lookup: %w", err)
	}

	token, err := s.issueToken(Claims{
		ID:   school.ID,
		Code: school.Code,
		Name: school.Name,
		Role: models.RoleSchool,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("school logged in", "school_id", school.ID)
	return &models.SchoolLoginResponse{Token: token, School: school}, nil
}

func (s *authService) StudentLogin(ctx context.Context, req *models.CodeLoginRequest) (*models.StudentLoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	student, err := s.repo.Student().GetByCode(ctx, req.Code)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError("student")
		}
		return nil, fmt.Errorf("student lookup: %w", err)
	}

	token, err := s.issueToken(Claims{
		ID:   student.ID,
		Code: student.StudentCode,
		Name: student.FullName,
		Role: models.RoleStudent,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("student logged in", "student_id", student.ID)
	return &models.StudentLoginResponse{Token: token, Student: student}, nil
}

// VerifyToken parses and validates a session token.
func (s *authService) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) issueToken(claims Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/workpulse/attendance-api/internal/access"
	"github.com/workpulse/attendance-api/internal/models"
	"github.com/workpulse/attendance-api/internal/validation"
	appErrors "github.com/workpulse/attendance-api/pkg/errors"
)

type authEmployeeRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Employee, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, employee *models.Employee) error
}

// AuthConfig defines configuration for token issuance.
type AuthConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AuthService issues and validates the bearer tokens that establish the
// identity attached to every unit of work.
type AuthService struct {
	repo   authEmployeeRepository
	logger *zap.Logger
	config AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authEmployeeRepository, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{repo: repo, logger: logger, config: config}
}

// Login verifies credentials and returns a signed token plus the employee.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	employee, err := s.repo.FindByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load employee")
	}
	if employee == nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "invalid email or password")
	}

	now := time.Now().UTC()
	claims := &models.JWTClaims{
		EmployeeID: employee.ID,
		Role:       employee.Role,
		Email:      employee.Email,
		Name:       employee.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   employee.ID,
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiration)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	return &models.LoginResult{Token: token, Employee: employee}, nil
}

// ValidateToken parses and verifies a bearer token, returning the identity
// it carries.
func (s *AuthService) ValidateToken(raw string) (*access.Identity, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "invalid or expired token")
	}
	if claims.EmployeeID == "" || !claims.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "invalid token claims")
	}
	return &access.Identity{
		ID:    claims.EmployeeID,
		Role:  claims.Role,
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}

// SeedAdmin bootstraps an initial admin account when the employees
// collection is empty and seed credentials are configured.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count employees")
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash seed password")
	}
	admin := &models.Employee{
		Name:          "Administrator",
		Email:         validation.NormalizeEmail(email),
		PasswordHash:  string(hash),
		Age:           30,
		Class:         "Administration",
		Subjects:      []string{"Administration"},
		Attendance:    100,
		Role:          models.RoleAdmin,
		DateOfJoining: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to seed admin")
	}
	s.logger.Info("seeded initial admin account", zap.String("email", admin.Email))
	return nil
}

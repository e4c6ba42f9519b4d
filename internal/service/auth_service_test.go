package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/workpulse/attendance-api/internal/models"
	appErrors "github.com/workpulse/attendance-api/pkg/errors"
)

type fakeAuthRepo struct {
	byEmail map[string]models.Employee
	count   int64
	created []models.Employee
}

func (f *fakeAuthRepo) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	if emp, ok := f.byEmail[email]; ok {
		return &emp, nil
	}
	return nil, nil
}

func (f *fakeAuthRepo) Count(ctx context.Context) (int64, error) {
	return f.count, nil
}

func (f *fakeAuthRepo) Create(ctx context.Context, employee *models.Employee) error {
	employee.ID = "seeded"
	f.created = append(f.created, *employee)
	return nil
}

func authFixture(t *testing.T) (*AuthService, *fakeAuthRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &fakeAuthRepo{byEmail: map[string]models.Employee{
		"jane@example.com": {
			ID:           "e1",
			Name:         "Jane",
			Email:        "jane@example.com",
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		},
	}}
	svc := NewAuthService(repo, zap.NewNop(), AuthConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "attendance-api",
	})
	return svc, repo
}

func TestLoginAndValidateRoundTrip(t *testing.T) {
	svc, _ := authFixture(t)

	result, err := svc.Login(context.Background(), " Jane@Example.COM ", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	identity, err := svc.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "e1", identity.ID)
	assert.Equal(t, models.RoleAdmin, identity.Role)
	assert.Equal(t, "jane@example.com", identity.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := authFixture(t)

	_, err := svc.Login(context.Background(), "jane@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthenticated))
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := authFixture(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "secret1")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthenticated))
}

func TestValidateTokenGarbage(t *testing.T) {
	svc, _ := authFixture(t)

	_, err := svc.ValidateToken("not-a-token")
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthenticated))
}

func TestSeedAdminOnlyOnEmptyCollection(t *testing.T) {
	svc, repo := authFixture(t)

	require.NoError(t, svc.SeedAdmin(context.Background(), "root@example.com", "bootstrap"))
	require.Len(t, repo.created, 1)
	assert.Equal(t, models.RoleAdmin, repo.created[0].Role)

	repo.count = 1
	repo.created = nil
	require.NoError(t, svc.SeedAdmin(context.Background(), "root@example.com", "bootstrap"))
	assert.Empty(t, repo.created)
}

func TestSeedAdminSkippedWithoutCredentials(t *testing.T) {
	svc, repo := authFixture(t)

	require.NoError(t, svc.SeedAdmin(context.Background(), "", ""))
	assert.Empty(t, repo.created)
}

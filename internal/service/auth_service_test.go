package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamsyntaxerror/selyo-api/internal/models"
	appErrors "github.com/teamsyntaxerror/selyo-api/pkg/errors"
)

type userRepoStub struct {
	users      map[string]models.User // keyed by email
	lastLogins map[string]time.Time
}

func newUserRepoStub(users ...models.User) *userRepoStub {
	stub := &userRepoStub{users: map[string]models.User{}, lastLogins: map[string]time.Time{}}
	for _, user := range users {
		stub.users[user.Email] = user
	}
	return stub
}

func (s *userRepoStub) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &user, nil
}

func (s *userRepoStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			return &user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *userRepoStub) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	s.lastLogins[id] = ts
	return nil
}

func testAuthConfig() AuthConfig {
	return AuthConfig{Secret: "test-secret", Expiration: time.Hour, Issuer: "selyo-api"}
}

func registrarUser(t *testing.T, password string, active bool) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return models.User{
		ID:           "user-1",
		Email:        "juan@school.edu",
		PasswordHash: string(hash),
		FullName:     "Juan Dela Cruz",
		Role:         models.RoleStudent,
		Active:       active,
	}
}

func TestAuthServiceLoginAndValidateToken(t *testing.T) {
	repo := newUserRepoStub(registrarUser(t, "s3cret", true))
	svc := NewAuthService(repo, validator.New(), nil, testAuthConfig())

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "juan@school.edu", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Contains(t, repo.lastLogins, "user-1")

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newUserRepoStub(registrarUser(t, "s3cret", true)), validator.New(), nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "juan@school.edu", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(newUserRepoStub(), validator.New(), nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@school.edu", Password: "whatever"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	svc := NewAuthService(newUserRepoStub(registrarUser(t, "s3cret", false)), validator.New(), nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "juan@school.edu", Password: "s3cret"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewAuthService(newUserRepoStub(registrarUser(t, "s3cret", true)), validator.New(), nil, testAuthConfig())
	resp, err := issuer.Login(context.Background(), models.LoginRequest{Email: "juan@school.edu", Password: "s3cret"})
	require.NoError(t, err)

	other := NewAuthService(newUserRepoStub(), validator.New(), nil, AuthConfig{Secret: "different", Expiration: time.Hour})
	_, err = other.ValidateToken(resp.AccessToken)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

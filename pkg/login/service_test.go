package login

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/campushq/classroom-idm/pkg/account"
	"github.com/campushq/classroom-idm/pkg/sessiontoken"
)

// MockRepository is a mock implementation of account.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByUsername(ctx context.Context, username string) (account.Account, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(account.Account), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, params account.CreateAccountParams) (account.Account, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(account.Account), args.Error(1)
}

func (m *MockRepository) UpdatePassword(ctx context.Context, username, newPassword string) error {
	args := m.Called(ctx, username, newPassword)
	return args.Error(0)
}

func newTestService(t *testing.T) (*LoginService, *account.InMemoryRepository, *sessiontoken.Service) {
	t.Helper()
	repo := account.NewInMemoryRepository()
	tokens := sessiontoken.NewService("test-secret")
	return NewLoginService(repo, tokens), repo, tokens
}

func seedAccount(t *testing.T, repo *account.InMemoryRepository, username, password string) {
	t.Helper()
	_, err := repo.Create(context.Background(), account.CreateAccountParams{
		Username:  username,
		Password:  password,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      account.RoleStudent,
	})
	require.NoError(t, err)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, repo, tokens := newTestService(t)
	seedAccount(t, repo, "alovelace", "Analyt1cal!")

	tokenStr, claims, err := svc.Login(ctx, "alovelace", "Analyt1cal!")
	require.NoError(t, err)
	assert.Equal(t, "alovelace", claims.Username)

	decoded, err := tokens.Validate(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "alovelace", decoded.Username)
}

func TestLoginUnknownUsername(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, _, err := svc.Login(context.Background(), "nobody", "Analyt1cal!")
	assert.ErrorIs(t, err, ErrUnknownUsername)
}

func TestLoginIncorrectPassword(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedAccount(t, repo, "alovelace", "Analyt1cal!")

	_, _, err := svc.Login(context.Background(), "alovelace", "analyt1cal!")
	assert.ErrorIs(t, err, ErrIncorrectPassword, "comparison is case-sensitive")
}

func TestLoginWithBcryptScheme(t *testing.T) {
	ctx := context.Background()
	repo := account.NewInMemoryRepository()
	tokens := sessiontoken.NewService("test-secret")

	stored, err := BcryptHasher{}.Hash("Analyt1cal!")
	require.NoError(t, err)
	seedAccount(t, repo, "alovelace", stored)

	svc := NewLoginService(repo, tokens,
		WithPasswordVerifier(BcryptVerifier{}),
		WithPasswordHasher(BcryptHasher{}),
	)

	_, claims, err := svc.Login(ctx, "alovelace", "Analyt1cal!")
	require.NoError(t, err)
	assert.Equal(t, "alovelace", claims.Username)

	_, _, err = svc.Login(ctx, "alovelace", "wrong")
	assert.ErrorIs(t, err, ErrIncorrectPassword)
}

func TestChangePasswordSamePasswordSkipsRepository(t *testing.T) {
	repo := new(MockRepository)
	svc := NewLoginService(repo, sessiontoken.NewService("test-secret"))

	err := svc.ChangePassword(context.Background(), "alovelace", "Analyt1cal!", "Analyt1cal!")
	assert.ErrorIs(t, err, ErrSamePassword)
	repo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangePasswordIncorrectCurrent(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedAccount(t, repo, "alovelace", "Analyt1cal!")

	err := svc.ChangePassword(context.Background(), "alovelace", "wrong", "NewSecr3t!")
	assert.ErrorIs(t, err, ErrIncorrectPassword)
}

func TestChangePasswordRotation(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)
	seedAccount(t, repo, "alovelace", "Analyt1cal!")

	require.NoError(t, svc.ChangePassword(ctx, "alovelace", "Analyt1cal!", "NewSecr3t!"))

	// Old password no longer logs in, the new one does.
	_, _, err := svc.Login(ctx, "alovelace", "Analyt1cal!")
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	_, claims, err := svc.Login(ctx, "alovelace", "NewSecr3t!")
	require.NoError(t, err)
	assert.Equal(t, "alovelace", claims.Username)
}

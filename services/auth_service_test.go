package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szl-run/szl-backend/models"
	"github.com/szl-run/szl-backend/repositories"
)

type MockUserRepository struct {
	users  map[string]*models.User
	nextID int
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[string]*models.User),
		nextID: 1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if _, ok := m.users[user.Email]; ok {
		return repositories.ErrUserEmailConflict
	}
	user.ID = m.nextID
	m.nextID++
	copied := *user
	m.users[user.Email] = &copied
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := NewMockUserRepository()
	svc := NewAuthService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Anna",
		Email:     "Anna@Example.COM",
		Password:  "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", user.Email)
	assert.Equal(t, models.RoleStaff, user.Role)
	// Хэш не утекает наружу.
	assert.Empty(t, user.PasswordHash)

	logged, err := svc.Login(context.Background(), LoginInput{
		Email:    "anna@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.Empty(t, logged.PasswordHash)
}

func TestAuthService_RegisterShortPassword(t *testing.T) {
	svc := NewAuthService(NewMockUserRepository())

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Anna",
		Email:     "anna@example.com",
		Password:  "short",
	})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(NewMockUserRepository())

	input := RegisterInput{FirstName: "Anna", Email: "anna@example.com", Password: "correct horse"}
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrAuthEmailTaken)
}

func TestAuthService_LoginInvalidCredentials(t *testing.T) {
	repo := NewMockUserRepository()
	svc := NewAuthService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Anna",
		Email:     "anna@example.com",
		Password:  "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{Email: "anna@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}

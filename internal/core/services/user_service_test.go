package services

import (
	"context"
	"testing"

	"bankerdir/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_UpdateUserByAdmin_CannotChangeOwnRole(t *testing.T) {
	mockRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: 1, Email: "admin@x.y", Role: "ADMIN"}, nil
		},
	}

	svc := NewUserService(mockRepo)
	role := "USER"
	_, err := svc.UpdateUserByAdmin(context.Background(), 1, 1, &UpdateUserByAdminInput{Role: &role})
	assert.ErrorIs(t, err, ErrCannotChangeOwnRole)
}

func TestUserService_UpdateUserByAdmin_RejectsUnknownRole(t *testing.T) {
	mockRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: 2, Email: "u@x.y", Role: "USER"}, nil
		},
	}

	svc := NewUserService(mockRepo)
	role := "SUPERUSER"
	_, err := svc.UpdateUserByAdmin(context.Background(), 2, 1, &UpdateUserByAdminInput{Role: &role})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUserService_UpdateUserByAdmin_DuplicateEmail(t *testing.T) {
	mockRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: 2, Email: "old@x.y", Role: "USER"}, nil
		},
		ExistsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}

	svc := NewUserService(mockRepo)
	email := "taken@x.y"
	_, err := svc.UpdateUserByAdmin(context.Background(), 2, 1, &UpdateUserByAdminInput{Email: &email})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestUserService_DeleteUser_CannotDeleteSelf(t *testing.T) {
	svc := NewUserService(&MockUserRepository{})

	err := svc.DeleteUser(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrCannotDeleteSelf)
}

func TestUserService_GetUserByEmail_MapsNotFound(t *testing.T) {
	svc := NewUserService(&MockUserRepository{})

	_, err := svc.GetUserByEmail(context.Background(), "missing@x.y")
	assert.ErrorIs(t, err, ErrUserNotFoundSvc)
}

func TestUserService_ListUsers_BuildsResponses(t *testing.T) {
	mockRepo := &MockUserRepository{
		ListFunc: func(ctx context.Context, search string, offset, limit int) ([]*models.User, int64, error) {
			return []*models.User{
				{ID: 1, FullName: "A", Email: "a@x.y", Password: "hash", Role: "ADMIN"},
			}, 1, nil
		},
	}

	svc := NewUserService(mockRepo)
	out, err := svc.ListUsers(context.Background(), &ListUsersInput{Page: 1, Limit: 9})
	require.NoError(t, err)

	require.Len(t, out.Data, 1)
	assert.Equal(t, "A", out.Data[0].FullName)
	assert.Equal(t, int64(1), out.Total)
	assert.Equal(t, 1, out.TotalPages)
}

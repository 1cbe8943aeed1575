package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/usecase"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/domain"
)

func storedUser(id, email, role string) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:        id,
		Email:     email,
		Role:      role,
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestListUsers_FiltersByRole(t *testing.T) {
	repo := newFakeUserRepo(
		storedUser("u-1", "donor@example.com", domain.RoleDonor),
		storedUser("u-2", "patient@example.com", domain.RolePatient),
	)
	svc := usecase.NewListUsersService(repo, testLogger())

	output, err := svc.Execute(context.Background(), in.ListUsersInput{Role: domain.RoleDonor})
	require.NoError(t, err)

	require.Len(t, output.Users, 1)
	assert.Equal(t, "donor@example.com", output.Users[0].Email)
	assert.Equal(t, 1, output.TotalCount)
}

func TestListUsers_DefaultsLimit(t *testing.T) {
	repo := newFakeUserRepo(storedUser("u-1", "donor@example.com", domain.RoleDonor))
	svc := usecase.NewListUsersService(repo, testLogger())

	output, err := svc.Execute(context.Background(), in.ListUsersInput{})
	require.NoError(t, err)

	assert.Equal(t, 50, output.Limit)
	assert.Zero(t, output.Offset)
}

func TestListUsers_UnknownRoleRejected(t *testing.T) {
	svc := usecase.NewListUsersService(newFakeUserRepo(), testLogger())

	_, err := svc.Execute(context.Background(), in.ListUsersInput{Role: "WIZARD"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

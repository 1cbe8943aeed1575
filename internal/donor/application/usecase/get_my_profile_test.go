package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/application/usecase"
	matchdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/user"
)

// fakeUserReader — учетные записи для обогащения профиля
type fakeUserReader struct {
	users map[string]*user.User
	err   error
}

func (r *fakeUserReader) FindByID(_ context.Context, userID string) (*user.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[userID]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserReader) Exists(_ context.Context, userID string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.users[userID]
	return ok, nil
}

func TestGetMyProfile_EnrichesWithAccount(t *testing.T) {
	donors := newFakeDonorRepo(testDonor())
	users := &fakeUserReader{users: map[string]*user.User{
		"u-1": {
			ID:        "u-1",
			Email:     "ravi.kumar@example.com",
			Phone:     "+91-9800000001",
			Role:      "DONOR",
			Status:    "ACTIVE",
			CreatedAt: time.Now().UTC(),
		},
	}}
	svc := usecase.NewGetMyProfileService(donors, users, testLogger())

	output, err := svc.Execute(context.Background(), in.GetMyProfileInput{DonorUserID: "u-1"})
	require.NoError(t, err)

	assert.Equal(t, "d-1", output.Donor.ID)
	assert.Equal(t, "ravi.kumar@example.com", output.Email)
	assert.Equal(t, "+91-9800000001", output.Phone)
	assert.Equal(t, "ACTIVE", output.AccountStatus)
}

func TestGetMyProfile_AccountLookupFailureTolerated(t *testing.T) {
	donors := newFakeDonorRepo(testDonor())
	users := &fakeUserReader{err: errors.New("db timeout")}
	svc := usecase.NewGetMyProfileService(donors, users, testLogger())

	output, err := svc.Execute(context.Background(), in.GetMyProfileInput{DonorUserID: "u-1"})
	require.NoError(t, err)

	assert.Equal(t, "d-1", output.Donor.ID)
	assert.Empty(t, output.Email)
	assert.Empty(t, output.AccountStatus)
}

func TestGetMyProfile_UnknownDonor(t *testing.T) {
	svc := usecase.NewGetMyProfileService(newFakeDonorRepo(), &fakeUserReader{}, testLogger())

	_, err := svc.Execute(context.Background(), in.GetMyProfileInput{DonorUserID: "u-missing"})
	assert.ErrorIs(t, err, matchdomain.ErrDonorNotFound)
}

package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/application/usecase"
	matchdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
)

func TestUpdateAvailability_TogglesAndPublishes(t *testing.T) {
	donors := newFakeDonorRepo(testDonor())
	publisher := &fakeDonorPublisher{}
	svc := usecase.NewUpdateAvailabilityService(donors, publisher, testLogger())

	output, err := svc.Execute(context.Background(), in.UpdateAvailabilityInput{
		DonorUserID: "u-1",
		Available:   false,
	})
	require.NoError(t, err)

	assert.False(t, output.IsAvailable)
	assert.False(t, donors.available("d-1"))

	require.Len(t, publisher.statuses, 1)
	assert.Equal(t, "d-1", publisher.statuses[0].DonorID)
	assert.False(t, publisher.statuses[0].IsAvailable)
}

func TestUpdateAvailability_SameValueStillPublishes(t *testing.T) {
	donors := newFakeDonorRepo(testDonor())
	publisher := &fakeDonorPublisher{}
	svc := usecase.NewUpdateAvailabilityService(donors, publisher, testLogger())

	output, err := svc.Execute(context.Background(), in.UpdateAvailabilityInput{
		DonorUserID: "u-1",
		Available:   true,
	})
	require.NoError(t, err)

	assert.True(t, output.IsAvailable)
	assert.True(t, donors.available("d-1"))
}

func TestUpdateAvailability_UnknownDonor(t *testing.T) {
	donors := newFakeDonorRepo()
	publisher := &fakeDonorPublisher{}
	svc := usecase.NewUpdateAvailabilityService(donors, publisher, testLogger())

	_, err := svc.Execute(context.Background(), in.UpdateAvailabilityInput{
		DonorUserID: "u-ghost",
		Available:   true,
	})
	require.ErrorIs(t, err, matchdomain.ErrDonorNotFound)
}

func TestRecordDonation_SetsLastDonationDate(t *testing.T) {
	donors := newFakeDonorRepo(testDonor())
	svc := usecase.NewRecordDonationService(donors, testLogger())

	output, err := svc.Execute(context.Background(), in.RecordDonationInput{DonorUserID: "u-1"})
	require.NoError(t, err)

	assert.Equal(t, "d-1", output.DonorID)
	require.NotNil(t, output.LastDonationDate)
}

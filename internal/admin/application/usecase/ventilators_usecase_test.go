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

func ventilator(id, hospitalID, status string) domain.Ventilator {
	return domain.Ventilator{
		ID:         id,
		HospitalID: hospitalID,
		Status:     status,
		UpdatedAt:  time.Now().UTC(),
	}
}

func TestListVentilators_AggregatesByStatus(t *testing.T) {
	repo := newFakeVentilatorRepo(
		ventilator("v-1", "h-1", domain.VentilatorAvailable),
		ventilator("v-2", "h-1", domain.VentilatorInUse),
		ventilator("v-3", "h-1", domain.VentilatorInUse),
		ventilator("v-4", "h-2", domain.VentilatorMaintenance),
	)
	svc := usecase.NewListVentilatorsService(repo, testLogger())

	output, err := svc.Execute(context.Background(), in.ListVentilatorsInput{})
	require.NoError(t, err)

	assert.Len(t, output.Ventilators, 4)
	assert.Equal(t, 1, output.ByStatus[domain.VentilatorAvailable])
	assert.Equal(t, 2, output.ByStatus[domain.VentilatorInUse])
	assert.Equal(t, 1, output.ByStatus[domain.VentilatorMaintenance])
}

func TestListVentilators_HospitalFilter(t *testing.T) {
	repo := newFakeVentilatorRepo(
		ventilator("v-1", "h-1", domain.VentilatorAvailable),
		ventilator("v-2", "h-2", domain.VentilatorAvailable),
	)
	svc := usecase.NewListVentilatorsService(repo, testLogger())

	output, err := svc.Execute(context.Background(), in.ListVentilatorsInput{HospitalID: "h-2"})
	require.NoError(t, err)

	require.Len(t, output.Ventilators, 1)
	assert.Equal(t, "v-2", output.Ventilators[0].ID)
}

func TestListVentilators_InvalidStatusFilter(t *testing.T) {
	svc := usecase.NewListVentilatorsService(newFakeVentilatorRepo(), testLogger())

	_, err := svc.Execute(context.Background(), in.ListVentilatorsInput{Status: "BROKEN"})
	assert.ErrorIs(t, err, domain.ErrInvalidVentilatorStatus)
}

func TestUpdateVentilator_ChangesStatus(t *testing.T) {
	repo := newFakeVentilatorRepo(ventilator("v-1", "h-1", domain.VentilatorAvailable))
	svc := usecase.NewUpdateVentilatorService(repo, testLogger())

	output, err := svc.Execute(context.Background(), in.UpdateVentilatorInput{
		VentilatorID: "v-1",
		Status:       domain.VentilatorInUse,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.VentilatorInUse, output.Ventilator.Status)
	assert.Equal(t, "h-1", output.Ventilator.HospitalID)
}

func TestUpdateVentilator_InvalidStatus(t *testing.T) {
	repo := newFakeVentilatorRepo(ventilator("v-1", "h-1", domain.VentilatorAvailable))
	svc := usecase.NewUpdateVentilatorService(repo, testLogger())

	_, err := svc.Execute(context.Background(), in.UpdateVentilatorInput{
		VentilatorID: "v-1",
		Status:       "RETIRED",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidVentilatorStatus)
}

func TestUpdateVentilator_NotFound(t *testing.T) {
	svc := usecase.NewUpdateVentilatorService(newFakeVentilatorRepo(), testLogger())

	_, err := svc.Execute(context.Background(), in.UpdateVentilatorInput{
		VentilatorID: "v-missing",
		Status:       domain.VentilatorMaintenance,
	})
	assert.ErrorIs(t, err, domain.ErrVentilatorNotFound)
}

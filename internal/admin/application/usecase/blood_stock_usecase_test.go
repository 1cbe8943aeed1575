package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/usecase"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/domain"
	matchdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
)

func stockLevel(hospitalID, bloodGroup string, quantity, threshold int) domain.StockLevel {
	return domain.StockLevel{
		HospitalID:   hospitalID,
		HospitalName: "City Hospital",
		BloodGroup:   bloodGroup,
		QuantityML:   quantity,
		MinThreshold: threshold,
		UpdatedAt:    time.Now().UTC(),
	}
}

func TestGetBloodStock_SeparatesLowStock(t *testing.T) {
	repo := newFakeStockRepo(
		stockLevel("h-1", "O_POSITIVE", 5000, 2000),
		stockLevel("h-1", "AB_NEGATIVE", 300, 1000),
	)
	svc := usecase.NewGetBloodStockService(repo, testLogger())

	output, err := svc.Execute(context.Background(), in.GetBloodStockInput{HospitalID: "h-1"})
	require.NoError(t, err)

	assert.Len(t, output.Stock, 2)
	require.Len(t, output.LowStock, 1)
	assert.Equal(t, "AB_NEGATIVE", output.LowStock[0].BloodGroup)
}

func TestGetBloodStock_BloodGroupSymbolAccepted(t *testing.T) {
	repo := newFakeStockRepo(
		stockLevel("h-1", "O_POSITIVE", 5000, 2000),
		stockLevel("h-1", "B_NEGATIVE", 4000, 2000),
	)
	svc := usecase.NewGetBloodStockService(repo, testLogger())

	output, err := svc.Execute(context.Background(), in.GetBloodStockInput{BloodGroup: "B-"})
	require.NoError(t, err)

	require.Len(t, output.Stock, 1)
	assert.Equal(t, "B_NEGATIVE", output.Stock[0].BloodGroup)
}

func TestGetBloodStock_InvalidBloodGroup(t *testing.T) {
	svc := usecase.NewGetBloodStockService(newFakeStockRepo(), testLogger())

	_, err := svc.Execute(context.Background(), in.GetBloodStockInput{BloodGroup: "X+"})
	assert.ErrorIs(t, err, matchdomain.ErrInvalidBloodGroup)
}

func TestUpdateBloodStock_AboveThresholdNoAlert(t *testing.T) {
	repo := newFakeStockRepo()
	notifier := &fakeStockAlertNotifier{}
	svc := usecase.NewUpdateBloodStockService(repo, notifier, testLogger())

	output, err := svc.Execute(context.Background(), in.UpdateBloodStockInput{
		HospitalID:   "h-1",
		BloodGroup:   "O_POSITIVE",
		QuantityML:   5000,
		MinThreshold: 2000,
	})
	require.NoError(t, err)

	assert.False(t, output.AlertRaised)
	assert.Equal(t, 5000, output.Stock.QuantityML)
	assert.Zero(t, notifier.alertCount())
}

func TestUpdateBloodStock_BelowThresholdRaisesAlert(t *testing.T) {
	repo := newFakeStockRepo()
	notifier := &fakeStockAlertNotifier{}
	svc := usecase.NewUpdateBloodStockService(repo, notifier, testLogger())

	output, err := svc.Execute(context.Background(), in.UpdateBloodStockInput{
		HospitalID:   "h-1",
		BloodGroup:   "AB_NEGATIVE",
		QuantityML:   300,
		MinThreshold: 1000,
	})
	require.NoError(t, err)

	assert.True(t, output.AlertRaised)
	require.Equal(t, 1, notifier.alertCount())
	assert.Equal(t, "AB_NEGATIVE", notifier.alerts[0].BloodGroup)
}

func TestUpdateBloodStock_AlertDeliveryFailureTolerated(t *testing.T) {
	repo := newFakeStockRepo()
	notifier := &fakeStockAlertNotifier{err: errors.New("smtp down")}
	svc := usecase.NewUpdateBloodStockService(repo, notifier, testLogger())

	output, err := svc.Execute(context.Background(), in.UpdateBloodStockInput{
		HospitalID:   "h-1",
		BloodGroup:   "AB_NEGATIVE",
		QuantityML:   300,
		MinThreshold: 1000,
	})
	require.NoError(t, err)
	assert.True(t, output.AlertRaised)
}

func TestUpdateBloodStock_Validation(t *testing.T) {
	repo := newFakeStockRepo()
	notifier := &fakeStockAlertNotifier{}
	svc := usecase.NewUpdateBloodStockService(repo, notifier, testLogger())

	_, err := svc.Execute(context.Background(), in.UpdateBloodStockInput{
		BloodGroup: "O_POSITIVE",
		QuantityML: 100,
	})
	assert.ErrorIs(t, err, domain.ErrHospitalNotFound)

	_, err = svc.Execute(context.Background(), in.UpdateBloodStockInput{
		HospitalID: "h-1",
		BloodGroup: "O_POSITIVE",
		QuantityML: -5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStockQuantity)

	_, err = svc.Execute(context.Background(), in.UpdateBloodStockInput{
		HospitalID: "h-1",
		BloodGroup: "INVALID",
		QuantityML: 100,
	})
	assert.ErrorIs(t, err, matchdomain.ErrInvalidBloodGroup)
}

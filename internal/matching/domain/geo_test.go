package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
)

func Test_HaversineKm_SamePointIsZero(t *testing.T) {
	assert.InDelta(t, 0, domain.HaversineKm(12.9716, 77.5946, 12.9716, 77.5946), 1e-9)
	assert.InDelta(t, 0, domain.HaversineKm(0, 0, 0, 0), 1e-9)
}

func Test_HaversineKm_IsSymmetric(t *testing.T) {
	d1 := domain.HaversineKm(12.9716, 77.5946, 13.0827, 80.2707)
	d2 := domain.HaversineKm(13.0827, 80.2707, 12.9716, 77.5946)
	assert.InDelta(t, d1, d2, 1e-9)
}

func Test_HaversineKm_KnownDistance(t *testing.T) {
	// Бангалор — Ченнаи, порядка 290 км по прямой
	d := domain.HaversineKm(12.9716, 77.5946, 13.0827, 80.2707)
	assert.InDelta(t, 290, d, 5)
}

func Test_ValidCoordinates(t *testing.T) {
	assert.True(t, domain.ValidCoordinates(12.9716, 77.5946))
	assert.True(t, domain.ValidCoordinates(-90, 180))
	assert.False(t, domain.ValidCoordinates(91, 0))
	assert.False(t, domain.ValidCoordinates(0, -181))
}

func Test_HasKnownLocation(t *testing.T) {
	assert.False(t, domain.HasKnownLocation(0, 0))
	assert.True(t, domain.HasKnownLocation(12.9716, 77.5946))
	assert.True(t, domain.HasKnownLocation(0, 77.5946))
}

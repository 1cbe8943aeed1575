package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
)

func donorLastDonated(daysAgo int, now time.Time) *domain.Donor {
	last := now.AddDate(0, 0, -daysAgo)
	return &domain.Donor{
		ID:               "d-1",
		BloodGroup:       domain.APositive,
		WeightKg:         70,
		LastDonationDate: &last,
		IsAvailable:      true,
	}
}

func Test_EligibleFor_Blood(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		donor    *domain.Donor
		eligible bool
	}{
		{
			name:     "never_donated_is_eligible",
			donor:    &domain.Donor{IsAvailable: true},
			eligible: true,
		},
		{
			name:     "donated_89_days_ago_is_not_eligible",
			donor:    donorLastDonated(89, now),
			eligible: false,
		},
		{
			name:     "donated_exactly_90_days_ago_is_eligible",
			donor:    donorLastDonated(90, now),
			eligible: true,
		},
		{
			name:     "donated_long_ago_is_eligible",
			donor:    donorLastDonated(365, now),
			eligible: true,
		},
		{
			name: "unavailable_donor_is_never_eligible",
			donor: &domain.Donor{
				IsAvailable: false,
			},
			eligible: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eligible, tt.donor.EligibleFor(domain.DonationBlood, now))
		})
	}
}

func Test_EligibleFor_Plasma(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, donorLastDonated(13, now).EligibleFor(domain.DonationPlasma, now))
	assert.True(t, donorLastDonated(14, now).EligibleFor(domain.DonationPlasma, now))
	assert.True(t, donorLastDonated(30, now).EligibleFor(domain.DonationPlasma, now))
}

func Test_DaysSinceLastDonation(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	d := &domain.Donor{}
	_, donated := d.DaysSinceLastDonation(now)
	assert.False(t, donated)

	days, donated := donorLastDonated(45, now).DaysSinceLastDonation(now)
	assert.True(t, donated)
	assert.Equal(t, 45, days)
}

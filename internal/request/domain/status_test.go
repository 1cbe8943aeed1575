package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
)

func Test_CanTransition(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{domain.StatusPending, domain.StatusApproved, true},
		{domain.StatusPending, domain.StatusRejected, true},
		{domain.StatusPending, domain.StatusCancelled, true},
		{domain.StatusApproved, domain.StatusFulfilled, true},
		{domain.StatusApproved, domain.StatusCancelled, true},
		{domain.StatusPending, domain.StatusFulfilled, false},
		{domain.StatusApproved, domain.StatusPending, false},
		{domain.StatusFulfilled, domain.StatusCancelled, false},
		{domain.StatusCancelled, domain.StatusApproved, false},
		{domain.StatusRejected, domain.StatusApproved, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, domain.CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func Test_IsTerminal(t *testing.T) {
	assert.False(t, domain.IsTerminal(domain.StatusPending))
	assert.False(t, domain.IsTerminal(domain.StatusApproved))
	assert.True(t, domain.IsTerminal(domain.StatusFulfilled))
	assert.True(t, domain.IsTerminal(domain.StatusRejected))
	assert.True(t, domain.IsTerminal(domain.StatusCancelled))
}

func Test_Request_NeedsDonorMatching(t *testing.T) {
	assert.True(t, (&domain.Request{RequestType: domain.TypeBlood}).NeedsDonorMatching())
	assert.True(t, (&domain.Request{RequestType: domain.TypePlasma}).NeedsDonorMatching())
	assert.False(t, (&domain.Request{RequestType: domain.TypeVentilator}).NeedsDonorMatching())
}

package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/application/usecase"
	matchdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	reqdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
)

func TestListMyMatches_EnrichesWithRequestData(t *testing.T) {
	group := matchdomain.BNegative
	donors := newFakeDonorRepo(testDonor())
	matches := &fakeMatchReader{matches: []*matchdomain.Match{
		pendingMatch("req-1", "d-1"),
		pendingMatch("req-2", "d-other"),
	}}
	requests := &fakeRequestReader{requests: map[string]*reqdomain.Request{
		"req-1": {
			ID:          "req-1",
			RequestType: reqdomain.TypeBlood,
			BloodGroup:  &group,
			Urgency:     reqdomain.UrgencyCritical,
			Status:      reqdomain.StatusPending,
		},
	}}
	svc := usecase.NewListMyMatchesService(donors, matches, requests, testLogger())

	output, err := svc.Execute(context.Background(), in.ListMyMatchesInput{DonorUserID: "u-1"})
	require.NoError(t, err)

	require.Len(t, output.Matches, 1)
	view := output.Matches[0]
	assert.Equal(t, "req-1", view.RequestID)
	assert.Equal(t, reqdomain.TypeBlood, view.RequestType)
	assert.Equal(t, "B-", view.BloodGroup)
	assert.Equal(t, reqdomain.UrgencyCritical, view.Urgency)
	assert.Equal(t, string(matchdomain.ResponsePending), view.Response)
}

func TestListMyMatches_ToleratesUnreadableRequest(t *testing.T) {
	donors := newFakeDonorRepo(testDonor())
	matches := &fakeMatchReader{matches: []*matchdomain.Match{pendingMatch("req-1", "d-1")}}
	requests := &fakeRequestReader{err: errors.New("db timeout")}
	svc := usecase.NewListMyMatchesService(donors, matches, requests, testLogger())

	output, err := svc.Execute(context.Background(), in.ListMyMatchesInput{DonorUserID: "u-1"})
	require.NoError(t, err)

	// Предложение отдано без обогащения
	require.Len(t, output.Matches, 1)
	assert.Empty(t, output.Matches[0].RequestType)
	assert.Equal(t, 82.5, output.Matches[0].Score)
}

func TestListMyMatches_EmptyList(t *testing.T) {
	donors := newFakeDonorRepo(testDonor())
	svc := usecase.NewListMyMatchesService(donors, &fakeMatchReader{}, &fakeRequestReader{}, testLogger())

	output, err := svc.Execute(context.Background(), in.ListMyMatchesInput{DonorUserID: "u-1"})
	require.NoError(t, err)
	assert.Empty(t, output.Matches)
}

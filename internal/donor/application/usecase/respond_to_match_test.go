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
)

func testDonor() *matchdomain.Donor {
	return &matchdomain.Donor{
		ID:          "d-1",
		UserID:      "u-1",
		FullName:    "Ravi Kumar",
		BloodGroup:  matchdomain.OPositive,
		IsAvailable: true,
	}
}

func pendingMatch(requestID, donorID string) *matchdomain.Match {
	return &matchdomain.Match{
		RequestID:  requestID,
		DonorID:    donorID,
		Score:      82.5,
		DistanceKm: 3.1,
		Response:   matchdomain.ResponsePending,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestRespondToMatch_AcceptPublishesResponse(t *testing.T) {
	donors := newFakeDonorRepo(testDonor())
	matches := &fakeMatchReader{matches: []*matchdomain.Match{pendingMatch("req-1", "d-1")}}
	publisher := &fakeDonorPublisher{}
	svc := usecase.NewRespondToMatchService(donors, matches, publisher, testLogger())

	output, err := svc.Execute(context.Background(), in.RespondToMatchInput{
		DonorUserID: "u-1",
		RequestID:   "req-1",
		Response:    "ACCEPTED",
	})
	require.NoError(t, err)

	assert.True(t, output.Delivered)
	assert.Equal(t, "d-1", output.DonorID)

	require.Len(t, publisher.responses, 1)
	event := publisher.responses[0]
	assert.Equal(t, "req-1", event.RequestID)
	assert.Equal(t, "ACCEPTED", event.Response)
	assert.NotEmpty(t, event.CorrelationID)
}

func TestRespondToMatch_InvalidResponse(t *testing.T) {
	donors := newFakeDonorRepo(testDonor())
	matches := &fakeMatchReader{matches: []*matchdomain.Match{pendingMatch("req-1", "d-1")}}
	publisher := &fakeDonorPublisher{}
	svc := usecase.NewRespondToMatchService(donors, matches, publisher, testLogger())

	_, err := svc.Execute(context.Background(), in.RespondToMatchInput{
		DonorUserID: "u-1",
		RequestID:   "req-1",
		Response:    "MAYBE",
	})
	require.ErrorIs(t, err, matchdomain.ErrInvalidResponse)
	assert.Empty(t, publisher.responses)
}

func TestRespondToMatch_NoMatchForRequest(t *testing.T) {
	donors := newFakeDonorRepo(testDonor())
	matches := &fakeMatchReader{}
	publisher := &fakeDonorPublisher{}
	svc := usecase.NewRespondToMatchService(donors, matches, publisher, testLogger())

	_, err := svc.Execute(context.Background(), in.RespondToMatchInput{
		DonorUserID: "u-1",
		RequestID:   "req-1",
		Response:    "REJECTED",
	})
	require.ErrorIs(t, err, matchdomain.ErrMatchNotFound)
}

func TestRespondToMatch_AlreadyResolved(t *testing.T) {
	match := pendingMatch("req-1", "d-1")
	match.Response = matchdomain.ResponseAccepted
	donors := newFakeDonorRepo(testDonor())
	matches := &fakeMatchReader{matches: []*matchdomain.Match{match}}
	publisher := &fakeDonorPublisher{}
	svc := usecase.NewRespondToMatchService(donors, matches, publisher, testLogger())

	_, err := svc.Execute(context.Background(), in.RespondToMatchInput{
		DonorUserID: "u-1",
		RequestID:   "req-1",
		Response:    "REJECTED",
	})
	require.ErrorIs(t, err, matchdomain.ErrMatchAlreadyResolved)
	assert.Empty(t, publisher.responses)
}

func TestRespondToMatch_PublishFailureSurfaces(t *testing.T) {
	donors := newFakeDonorRepo(testDonor())
	matches := &fakeMatchReader{matches: []*matchdomain.Match{pendingMatch("req-1", "d-1")}}
	publisher := &fakeDonorPublisher{err: errors.New("broker unavailable")}
	svc := usecase.NewRespondToMatchService(donors, matches, publisher, testLogger())

	_, err := svc.Execute(context.Background(), in.RespondToMatchInput{
		DonorUserID: "u-1",
		RequestID:   "req-1",
		Response:    "ACCEPTED",
	})
	require.Error(t, err)
}

func TestRespondToMatch_UnknownDonor(t *testing.T) {
	donors := newFakeDonorRepo()
	matches := &fakeMatchReader{}
	publisher := &fakeDonorPublisher{}
	svc := usecase.NewRespondToMatchService(donors, matches, publisher, testLogger())

	_, err := svc.Execute(context.Background(), in.RespondToMatchInput{
		DonorUserID: "u-ghost",
		RequestID:   "req-1",
		Response:    "ACCEPTED",
	})
	require.ErrorIs(t, err, matchdomain.ErrDonorNotFound)
}

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
	reqdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
)

func bloodRequest(id, status string) *reqdomain.Request {
	return &reqdomain.Request{
		ID:          id,
		PatientID:   "p-1",
		RequestType: reqdomain.TypeBlood,
		QuantityML:  450,
		Urgency:     reqdomain.UrgencyUrgent,
		Status:      status,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

func TestGetPendingRequests_IncludesResponseSummary(t *testing.T) {
	requests := &fakeRequestReader{requests: []*reqdomain.Request{
		bloodRequest("r-1", reqdomain.StatusPending),
		bloodRequest("r-2", reqdomain.StatusPending),
	}}
	summary := &fakeMatchSummaryReader{counts: map[string]map[string]int{
		"r-1": {"PENDING": 2, "ACCEPTED": 1, "REJECTED": 1},
	}}
	svc := usecase.NewGetPendingRequestsService(requests, summary, testLogger())

	output, err := svc.Execute(context.Background(), in.GetPendingRequestsInput{})
	require.NoError(t, err)

	require.Equal(t, 2, output.TotalCount)
	first := output.Requests[0]
	assert.Equal(t, "r-1", first.Request.ID)
	assert.Equal(t, 4, first.MatchedDonors)
	assert.Equal(t, 1, first.Accepted)
	assert.Equal(t, 1, first.Rejected)

	// для r-2 подбор еще не запускался
	assert.Zero(t, output.Requests[1].MatchedDonors)
}

func TestGetPendingRequests_SummaryFailureTolerated(t *testing.T) {
	requests := &fakeRequestReader{requests: []*reqdomain.Request{
		bloodRequest("r-1", reqdomain.StatusPending),
	}}
	summary := &fakeMatchSummaryReader{err: errors.New("db timeout")}
	svc := usecase.NewGetPendingRequestsService(requests, summary, testLogger())

	output, err := svc.Execute(context.Background(), in.GetPendingRequestsInput{})
	require.NoError(t, err)

	require.Equal(t, 1, output.TotalCount)
	assert.Zero(t, output.Requests[0].MatchedDonors)
}

func TestGetPendingRequests_StatusFilter(t *testing.T) {
	requests := &fakeRequestReader{requests: []*reqdomain.Request{
		bloodRequest("r-1", reqdomain.StatusPending),
		bloodRequest("r-2", reqdomain.StatusApproved),
	}}
	summary := &fakeMatchSummaryReader{}
	svc := usecase.NewGetPendingRequestsService(requests, summary, testLogger())

	output, err := svc.Execute(context.Background(), in.GetPendingRequestsInput{Status: reqdomain.StatusApproved})
	require.NoError(t, err)

	require.Equal(t, 1, output.TotalCount)
	assert.Equal(t, "r-2", output.Requests[0].Request.ID)
}

func TestGetPendingRequests_UnknownStatus(t *testing.T) {
	svc := usecase.NewGetPendingRequestsService(&fakeRequestReader{}, &fakeMatchSummaryReader{}, testLogger())

	_, err := svc.Execute(context.Background(), in.GetPendingRequestsInput{Status: "ARCHIVED"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestGetOverview_ComputedFromMetrics(t *testing.T) {
	metrics := &fakeMetricsRepo{
		metrics: &in.SystemMetrics{
			OpenRequests:    7,
			TotalDonors:     120,
			AvailableDonors: 80,
			MatchesTotal:    40,
			MatchesAccepted: 10,
			AcceptanceRate:  0.25,
		},
		byStatus:     map[string]int{"PENDING": 5, "APPROVED": 2},
		byType:       map[string]int{"BLOOD": 6, "VENTILATOR": 1},
		distribution: map[string]int{"O_POSITIVE": 30},
	}
	svc := usecase.NewGetOverviewService(metrics, testLogger())

	output, err := svc.Execute(context.Background(), in.GetOverviewInput{})
	require.NoError(t, err)

	assert.Equal(t, 7, output.Metrics.OpenRequests)
	assert.Equal(t, 5, output.RequestsByStatus["PENDING"])
	assert.Equal(t, 30, output.DonorDistribution["O_POSITIVE"])
	assert.NotEmpty(t, output.Timestamp)
}

func TestGetOverview_DistributionFailureTolerated(t *testing.T) {
	metrics := &fakeMetricsRepo{
		metrics:  &in.SystemMetrics{OpenRequests: 3},
		groupErr: errors.New("db timeout"),
	}
	svc := usecase.NewGetOverviewService(metrics, testLogger())

	output, err := svc.Execute(context.Background(), in.GetOverviewInput{})
	require.NoError(t, err)

	assert.Equal(t, 3, output.Metrics.OpenRequests)
	assert.Nil(t, output.RequestsByStatus)
}

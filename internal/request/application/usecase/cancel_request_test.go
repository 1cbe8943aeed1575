package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	matchdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/application/usecase"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
)

func pendingRequest(id, patientID string) *domain.Request {
	group := matchdomain.APositive
	return &domain.Request{
		ID:          id,
		PatientID:   patientID,
		RequestType: domain.TypeBlood,
		BloodGroup:  &group,
		QuantityML:  450,
		Urgency:     domain.UrgencyUrgent,
		Status:      domain.StatusPending,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

type cancelFixture struct {
	repo      *fakeRequestRepo
	publisher *fakeEventPublisher
	svc       *usecase.CancelRequestService
}

func newCancelFixture(reqs ...*domain.Request) *cancelFixture {
	f := &cancelFixture{
		repo:      newFakeRequestRepo(reqs...),
		publisher: &fakeEventPublisher{},
	}
	patients := newFakePatientRepo(
		&matchdomain.Patient{ID: "p-1", UserID: "u-1", FullName: "Asha Rao"},
		&matchdomain.Patient{ID: "p-2", UserID: "u-2", FullName: "Vikram Shetty"},
	)
	f.svc = usecase.NewCancelRequestService(f.repo, patients, f.publisher, testLogger())
	return f
}

func TestCancelRequest_OwnerCancelsPendingRequest(t *testing.T) {
	f := newCancelFixture(pendingRequest("req-1", "p-1"))

	output, err := f.svc.Execute(context.Background(), in.CancelRequestInput{
		RequestID:     "req-1",
		PatientUserID: "u-1",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, output.Status)
	assert.Equal(t, domain.StatusCancelled, f.repo.status("req-1"))
	assert.Equal(t, []string{"REQUEST_CANCELLED"}, f.publisher.eventTypes())
}

func TestCancelRequest_ApprovedRequestCanStillBeCancelled(t *testing.T) {
	req := pendingRequest("req-1", "p-1")
	req.Status = domain.StatusApproved
	f := newCancelFixture(req)

	_, err := f.svc.Execute(context.Background(), in.CancelRequestInput{
		RequestID:     "req-1",
		PatientUserID: "u-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, f.repo.status("req-1"))
}

func TestCancelRequest_ForeignRequestRejected(t *testing.T) {
	f := newCancelFixture(pendingRequest("req-1", "p-1"))

	_, err := f.svc.Execute(context.Background(), in.CancelRequestInput{
		RequestID:     "req-1",
		PatientUserID: "u-2",
	})
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.Equal(t, domain.StatusPending, f.repo.status("req-1"))
	assert.Empty(t, f.publisher.eventTypes())
}

func TestCancelRequest_TerminalStatusesRejected(t *testing.T) {
	for _, status := range []string{domain.StatusFulfilled, domain.StatusRejected, domain.StatusCancelled} {
		t.Run(status, func(t *testing.T) {
			req := pendingRequest("req-1", "p-1")
			req.Status = status
			f := newCancelFixture(req)

			_, err := f.svc.Execute(context.Background(), in.CancelRequestInput{
				RequestID:     "req-1",
				PatientUserID: "u-1",
			})
			require.ErrorIs(t, err, domain.ErrRequestAlreadyResolved)
		})
	}
}

func TestCancelRequest_UnknownRequest(t *testing.T) {
	f := newCancelFixture()

	_, err := f.svc.Execute(context.Background(), in.CancelRequestInput{
		RequestID:     "req-missing",
		PatientUserID: "u-1",
	})
	require.ErrorIs(t, err, domain.ErrRequestNotFound)
}

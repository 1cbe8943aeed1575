package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	matchdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/application/usecase"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
)

type submitFixture struct {
	repo      *fakeRequestRepo
	patients  *fakePatientRepo
	notify    *fakeNotifyDonorsUC
	publisher *fakeEventPublisher
	svc       *usecase.SubmitRequestService
}

func newSubmitFixture() *submitFixture {
	f := &submitFixture{
		repo: newFakeRequestRepo(),
		patients: newFakePatientRepo(
			&matchdomain.Patient{ID: "p-1", UserID: "u-1", FullName: "Asha Rao", Email: "asha@example.com", Phone: "+911112223334"},
		),
		notify:    &fakeNotifyDonorsUC{notified: 3},
		publisher: &fakeEventPublisher{},
	}
	f.svc = usecase.NewSubmitRequestService(f.repo, f.patients, f.notify, f.publisher, testLogger())
	return f
}

func TestSubmitRequest_BloodRequestPersistsAndTriggersMatching(t *testing.T) {
	f := newSubmitFixture()

	output, err := f.svc.Execute(context.Background(), in.SubmitRequestInput{
		PatientUserID: "u-1",
		RequestType:   domain.TypeBlood,
		BloodGroup:    "A_POSITIVE",
		QuantityML:    450,
		Urgency:       domain.UrgencyUrgent,
	})
	require.NoError(t, err)
	require.NotEmpty(t, output.RequestID)

	assert.Equal(t, domain.StatusPending, output.Status)
	assert.Equal(t, 3, output.MatchedDonors)
	assert.Equal(t, 1, f.notify.callCount())
	assert.Equal(t, []string{"REQUEST_CREATED"}, f.publisher.eventTypes())

	stored, err := f.repo.FindByID(context.Background(), output.RequestID)
	require.NoError(t, err)
	assert.Equal(t, "p-1", stored.PatientID)
	require.NotNil(t, stored.BloodGroup)
	assert.Equal(t, matchdomain.APositive, *stored.BloodGroup)
}

func TestSubmitRequest_AcceptsBloodGroupSymbol(t *testing.T) {
	f := newSubmitFixture()

	output, err := f.svc.Execute(context.Background(), in.SubmitRequestInput{
		PatientUserID: "u-1",
		RequestType:   domain.TypePlasma,
		BloodGroup:    "AB-",
		QuantityML:    600,
		Urgency:       domain.UrgencyCritical,
	})
	require.NoError(t, err)

	stored, err := f.repo.FindByID(context.Background(), output.RequestID)
	require.NoError(t, err)
	require.NotNil(t, stored.BloodGroup)
	assert.Equal(t, matchdomain.ABNegative, *stored.BloodGroup)
}

func TestSubmitRequest_VentilatorSkipsMatching(t *testing.T) {
	f := newSubmitFixture()

	output, err := f.svc.Execute(context.Background(), in.SubmitRequestInput{
		PatientUserID: "u-1",
		RequestType:   domain.TypeVentilator,
		Urgency:       domain.UrgencyNormal,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, output.MatchedDonors)
	assert.Equal(t, 0, f.notify.callCount())
	assert.Equal(t, []string{"REQUEST_CREATED"}, f.publisher.eventTypes())
}

func TestSubmitRequest_MatchingFailureDoesNotLoseRequest(t *testing.T) {
	f := newSubmitFixture()
	f.notify.err = errors.New("rabbitmq down")

	output, err := f.svc.Execute(context.Background(), in.SubmitRequestInput{
		PatientUserID: "u-1",
		RequestType:   domain.TypeBlood,
		BloodGroup:    "O_NEGATIVE",
		QuantityML:    450,
		Urgency:       domain.UrgencyCritical,
	})
	require.NoError(t, err)

	// Заявка сохранена, хотя доноров уведомить не удалось
	assert.Equal(t, 0, output.MatchedDonors)
	stored, err := f.repo.FindByID(context.Background(), output.RequestID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestSubmitRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   in.SubmitRequestInput
		wantErr error
	}{
		{
			name: "unknown request type",
			input: in.SubmitRequestInput{
				PatientUserID: "u-1", RequestType: "KIDNEY", Urgency: domain.UrgencyNormal,
			},
			wantErr: domain.ErrInvalidRequestType,
		},
		{
			name: "unknown urgency",
			input: in.SubmitRequestInput{
				PatientUserID: "u-1", RequestType: domain.TypeBlood,
				BloodGroup: "A_POSITIVE", QuantityML: 450, Urgency: "ASAP",
			},
			wantErr: domain.ErrInvalidUrgency,
		},
		{
			name: "blood without quantity",
			input: in.SubmitRequestInput{
				PatientUserID: "u-1", RequestType: domain.TypeBlood,
				BloodGroup: "A_POSITIVE", Urgency: domain.UrgencyNormal,
			},
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name: "blood without group",
			input: in.SubmitRequestInput{
				PatientUserID: "u-1", RequestType: domain.TypeBlood,
				QuantityML: 450, Urgency: domain.UrgencyNormal,
			},
			wantErr: domain.ErrMissingBloodGroup,
		},
		{
			name: "unparseable group",
			input: in.SubmitRequestInput{
				PatientUserID: "u-1", RequestType: domain.TypePlasma,
				BloodGroup: "C_POSITIVE", QuantityML: 600, Urgency: domain.UrgencyNormal,
			},
			wantErr: matchdomain.ErrInvalidBloodGroup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSubmitFixture()

			_, err := f.svc.Execute(context.Background(), tt.input)
			require.ErrorIs(t, err, tt.wantErr)

			// Невалидная заявка не сохраняется и события не публикует
			assert.Empty(t, f.publisher.eventTypes())
			assert.Equal(t, 0, f.notify.callCount())
		})
	}
}

func TestSubmitRequest_UnknownPatient(t *testing.T) {
	f := newSubmitFixture()

	_, err := f.svc.Execute(context.Background(), in.SubmitRequestInput{
		PatientUserID: "u-unknown",
		RequestType:   domain.TypeBlood,
		BloodGroup:    "A_POSITIVE",
		QuantityML:    450,
		Urgency:       domain.UrgencyNormal,
	})
	require.ErrorIs(t, err, matchdomain.ErrPatientNotFound)
}

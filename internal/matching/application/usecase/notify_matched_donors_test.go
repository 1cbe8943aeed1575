package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/application/usecase"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
)

func notifierFixture(t *testing.T, donorCount int) (in.NotifyMatchedDonorsUseCase, *fakeMatchRepo, *fakeNotifier) {
	t.Helper()

	reqStore := newFakeRequestStore(bloodRequest("r-1", domain.APositive))
	patients, hospitals := defaultParties()

	var all []*domain.Donor
	for i := 0; i < donorCount; i++ {
		all = append(all, donorAtKm(string(rune('a'+i)), domain.APositive, float64(i+1)))
	}
	donors := &fakeDonorRepo{donors: all}

	finder := usecase.NewFindDonorMatchesService(reqStore, donors, patients, hospitals, matchingCfg(), testLogger())
	matchRepo := newFakeMatchRepo()
	notifier := &fakeNotifier{}
	publisher := &fakePublisher{}

	svc := usecase.NewNotifyMatchedDonorsService(finder, matchRepo, notifier, publisher, 5, testLogger())
	return svc, matchRepo, notifier
}

func Test_NotifyMatchedDonors_PersistsTopKAndNotifies(t *testing.T) {
	svc, matchRepo, notifier := notifierFixture(t, 7)

	out, err := svc.Execute(context.Background(), in.NotifyMatchedDonorsInput{RequestID: "r-1"})
	require.NoError(t, err)

	assert.Equal(t, 7, out.MatchedDonors)
	assert.Equal(t, 5, out.NotifiedNow)

	matches, err := matchRepo.FindByRequest(context.Background(), "r-1")
	require.NoError(t, err)
	assert.Len(t, matches, 5)
	for _, m := range matches {
		assert.Equal(t, domain.ResponsePending, m.Response)
	}

	assert.Equal(t, 5, notifier.inAppCount())
	assert.Len(t, notifier.emails, 5)
	assert.Len(t, notifier.sms, 5)
}

func Test_NotifyMatchedDonors_ReinvocationIsIdempotent(t *testing.T) {
	svc, matchRepo, notifier := notifierFixture(t, 3)

	first, err := svc.Execute(context.Background(), in.NotifyMatchedDonorsInput{RequestID: "r-1"})
	require.NoError(t, err)
	assert.Equal(t, 3, first.NotifiedNow)

	second, err := svc.Execute(context.Background(), in.NotifyMatchedDonorsInput{RequestID: "r-1"})
	require.NoError(t, err)
	assert.Equal(t, 0, second.NotifiedNow)

	matches, err := matchRepo.FindByRequest(context.Background(), "r-1")
	require.NoError(t, err)
	assert.Len(t, matches, 3)

	// Повторный вызов не рассылает заново
	assert.Equal(t, 3, notifier.inAppCount())
	assert.Len(t, notifier.emails, 3)
}

func Test_NotifyMatchedDonors_ChannelFailureDoesNotBlockOthers(t *testing.T) {
	svc, matchRepo, notifier := notifierFixture(t, 2)
	notifier.emailErr = assert.AnError

	out, err := svc.Execute(context.Background(), in.NotifyMatchedDonorsInput{RequestID: "r-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.NotifiedNow)

	// Email упал, но связи сохранены и остальные каналы доставлены
	matches, _ := matchRepo.FindByRequest(context.Background(), "r-1")
	assert.Len(t, matches, 2)
	assert.Equal(t, 2, notifier.inAppCount())
	assert.Len(t, notifier.sms, 2)
	assert.Empty(t, notifier.emails)
}

func Test_NotifyMatchedDonors_NoCandidates(t *testing.T) {
	svc, matchRepo, notifier := notifierFixture(t, 0)

	out, err := svc.Execute(context.Background(), in.NotifyMatchedDonorsInput{RequestID: "r-1"})
	require.NoError(t, err)
	assert.Equal(t, 0, out.MatchedDonors)
	assert.Equal(t, 0, out.NotifiedNow)

	matches, _ := matchRepo.FindByRequest(context.Background(), "r-1")
	assert.Empty(t, matches)
	assert.Equal(t, 0, notifier.inAppCount())
}

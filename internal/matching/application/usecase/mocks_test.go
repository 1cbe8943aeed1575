package usecase_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	reqdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

func testLogger() *logger.Logger {
	return logger.NewLogger("test")
}

// fakeRequestStore — потокобезопасное in-memory хранилище заявок
type fakeRequestStore struct {
	mu       sync.Mutex
	requests map[string]*reqdomain.Request
}

func newFakeRequestStore(reqs ...*reqdomain.Request) *fakeRequestStore {
	s := &fakeRequestStore{requests: make(map[string]*reqdomain.Request)}
	for _, r := range reqs {
		s.requests[r.ID] = r
	}
	return s
}

func (s *fakeRequestStore) FindByID(_ context.Context, id string) (*reqdomain.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, reqdomain.ErrRequestNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *fakeRequestStore) UpdateStatusIf(_ context.Context, id, from, to string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok || r.Status != from {
		return false, nil
	}
	r.Status = to
	return true, nil
}

func (s *fakeRequestStore) status(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[id].Status
}

// fakeDonorRepo — in-memory репозиторий доноров; failGroups имитирует
// сбой выборки по отдельным группам
type fakeDonorRepo struct {
	donors     []*domain.Donor
	failGroups map[domain.BloodGroup]bool
}

func (r *fakeDonorRepo) FindByBloodGroup(_ context.Context, g domain.BloodGroup) ([]*domain.Donor, error) {
	if r.failGroups[g] {
		return nil, errors.New("connection refused")
	}
	var res []*domain.Donor
	for _, d := range r.donors {
		if d.BloodGroup == g && d.IsAvailable {
			res = append(res, d)
		}
	}
	return res, nil
}

func (r *fakeDonorRepo) FindByID(_ context.Context, id string) (*domain.Donor, error) {
	for _, d := range r.donors {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, domain.ErrDonorNotFound
}

func (r *fakeDonorRepo) FindByUserID(_ context.Context, userID string) (*domain.Donor, error) {
	for _, d := range r.donors {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, domain.ErrDonorNotFound
}

func (r *fakeDonorRepo) SetAvailability(_ context.Context, id string, available bool) error {
	for _, d := range r.donors {
		if d.ID == id {
			d.IsAvailable = available
			return nil
		}
	}
	return domain.ErrDonorNotFound
}

type fakePatientRepo struct {
	patients map[string]*domain.Patient
}

func (r *fakePatientRepo) FindByID(_ context.Context, id string) (*domain.Patient, error) {
	if p, ok := r.patients[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPatientNotFound
}

func (r *fakePatientRepo) FindByUserID(_ context.Context, userID string) (*domain.Patient, error) {
	for _, p := range r.patients {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, domain.ErrPatientNotFound
}

type fakeHospitalRepo struct {
	hospitals map[string]*domain.Hospital
}

func (r *fakeHospitalRepo) FindByID(_ context.Context, id string) (*domain.Hospital, error) {
	if h, ok := r.hospitals[id]; ok {
		return h, nil
	}
	return nil, domain.ErrHospitalNotFound
}

// fakeMatchRepo — потокобезопасное in-memory хранилище связей
type fakeMatchRepo struct {
	mu      sync.Mutex
	matches map[string]*domain.Match // ключ requestID+"/"+donorID
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[string]*domain.Match)}
}

func (r *fakeMatchRepo) key(requestID, donorID string) string {
	return requestID + "/" + donorID
}

func (r *fakeMatchRepo) Insert(_ context.Context, m *domain.Match) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := r.key(m.RequestID, m.DonorID)
	if _, ok := r.matches[k]; ok {
		return false, nil
	}
	cp := *m
	r.matches[k] = &cp
	return true, nil
}

func (r *fakeMatchRepo) UpdateResponse(_ context.Context, requestID, donorID string, response domain.DonorResponse, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[r.key(requestID, donorID)]
	if !ok || m.Response != domain.ResponsePending {
		return false, nil
	}
	m.Response = response
	m.ResponseTime = &at
	return true, nil
}

func (r *fakeMatchRepo) FindByRequest(_ context.Context, requestID string) ([]*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*domain.Match
	for _, m := range r.matches {
		if m.RequestID == requestID {
			res = append(res, m)
		}
	}
	return res, nil
}

func (r *fakeMatchRepo) FindByDonor(_ context.Context, donorID string) ([]*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*domain.Match
	for _, m := range r.matches {
		if m.DonorID == donorID {
			res = append(res, m)
		}
	}
	return res, nil
}

func (r *fakeMatchRepo) get(requestID, donorID string) *domain.Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.matches[r.key(requestID, donorID)]
}

// fakeNotifier считает доставки по каналам
type fakeNotifier struct {
	mu     sync.Mutex
	inApp  []out.InAppNotification
	emails []string
	sms    []string

	inAppErr error
	emailErr error
	smsErr   error
}

func (n *fakeNotifier) SendInApp(_ context.Context, notification out.InAppNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.inAppErr != nil {
		return n.inAppErr
	}
	n.inApp = append(n.inApp, notification)
	return nil
}

func (n *fakeNotifier) SendEmail(_ context.Context, address, _, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.emailErr != nil {
		return n.emailErr
	}
	n.emails = append(n.emails, address)
	return nil
}

func (n *fakeNotifier) SendSMS(_ context.Context, phone, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.smsErr != nil {
		return n.smsErr
	}
	n.sms = append(n.sms, phone)
	return nil
}

func (n *fakeNotifier) inAppCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.inApp)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *fakePublisher) PublishMatchEvent(_ context.Context, eventType string, _ out.MatchEventData) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	return nil
}

// fakeTxManager выполняет fn без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

package usecase_test

import (
	"context"
	"sync"

	matchin "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/application/ports/in"
	matchdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

func testLogger() *logger.Logger {
	return logger.NewLogger("test")
}

// fakeRequestRepo — потокобезопасное in-memory хранилище заявок
type fakeRequestRepo struct {
	mu        sync.Mutex
	requests  map[string]*domain.Request
	createErr error
}

func newFakeRequestRepo(reqs ...*domain.Request) *fakeRequestRepo {
	r := &fakeRequestRepo{requests: make(map[string]*domain.Request)}
	for _, req := range reqs {
		r.requests[req.ID] = req
	}
	return r
}

func (r *fakeRequestRepo) Create(_ context.Context, req *domain.Request) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id string) (*domain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRequestRepo) FindByPatientID(_ context.Context, patientID string) ([]*domain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Request
	for _, req := range r.requests {
		if req.PatientID == patientID {
			cp := *req
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *fakeRequestRepo) FindByStatus(_ context.Context, status string, limit int) ([]*domain.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Request
	for _, req := range r.requests {
		if req.Status == status && len(result) < limit {
			cp := *req
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *fakeRequestRepo) UpdateStatusIf(_ context.Context, id, from, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok || req.Status != from {
		return false, nil
	}
	req.Status = to
	return true, nil
}

func (r *fakeRequestRepo) status(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[id].Status
}

// fakePatientRepo ищет пациентов по ID и по user_id
type fakePatientRepo struct {
	patients map[string]*matchdomain.Patient // key: user_id
}

func newFakePatientRepo(patients ...*matchdomain.Patient) *fakePatientRepo {
	r := &fakePatientRepo{patients: make(map[string]*matchdomain.Patient)}
	for _, p := range patients {
		r.patients[p.UserID] = p
	}
	return r
}

func (r *fakePatientRepo) FindByID(_ context.Context, id string) (*matchdomain.Patient, error) {
	for _, p := range r.patients {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, matchdomain.ErrPatientNotFound
}

func (r *fakePatientRepo) FindByUserID(_ context.Context, userID string) (*matchdomain.Patient, error) {
	p, ok := r.patients[userID]
	if !ok {
		return nil, matchdomain.ErrPatientNotFound
	}
	return p, nil
}

// fakeNotifyDonorsUC фиксирует запуски подбора доноров
type fakeNotifyDonorsUC struct {
	mu       sync.Mutex
	calls    []string
	notified int
	err      error
}

func (u *fakeNotifyDonorsUC) Execute(_ context.Context, input matchin.NotifyMatchedDonorsInput) (*matchin.NotifyMatchedDonorsOutput, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls = append(u.calls, input.RequestID)
	if u.err != nil {
		return nil, u.err
	}
	return &matchin.NotifyMatchedDonorsOutput{
		RequestID:     input.RequestID,
		MatchedDonors: u.notified,
		NotifiedNow:   u.notified,
	}, nil
}

func (u *fakeNotifyDonorsUC) callCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.calls)
}

// fakeEventPublisher накапливает опубликованные события
type fakeEventPublisher struct {
	mu     sync.Mutex
	events []string // eventType
	data   []out.RequestEventData
	err    error
}

func (p *fakeEventPublisher) PublishRequestEvent(_ context.Context, eventType string, data out.RequestEventData) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, eventType)
	p.data = append(p.data, data)
	return nil
}

func (p *fakeEventPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

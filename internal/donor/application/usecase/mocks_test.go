package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/donor/application/ports/out"
	matchdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	reqdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

func testLogger() *logger.Logger {
	return logger.NewLogger("test")
}

// fakeDonorRepo — in-memory репозиторий доноров
type fakeDonorRepo struct {
	mu     sync.Mutex
	donors map[string]*matchdomain.Donor // key: donor ID
}

func newFakeDonorRepo(donors ...*matchdomain.Donor) *fakeDonorRepo {
	r := &fakeDonorRepo{donors: make(map[string]*matchdomain.Donor)}
	for _, d := range donors {
		r.donors[d.ID] = d
	}
	return r
}

func (r *fakeDonorRepo) FindByID(_ context.Context, donorID string) (*matchdomain.Donor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.donors[donorID]
	if !ok {
		return nil, matchdomain.ErrDonorNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDonorRepo) FindByUserID(_ context.Context, userID string) (*matchdomain.Donor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.donors {
		if d.UserID == userID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, matchdomain.ErrDonorNotFound
}

func (r *fakeDonorRepo) SetAvailability(_ context.Context, donorID string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.donors[donorID]
	if !ok {
		return matchdomain.ErrDonorNotFound
	}
	d.IsAvailable = available
	return nil
}

func (r *fakeDonorRepo) RecordDonation(_ context.Context, donorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.donors[donorID]
	if !ok {
		return matchdomain.ErrDonorNotFound
	}
	now := time.Now().UTC()
	d.LastDonationDate = &now
	return nil
}

func (r *fakeDonorRepo) available(donorID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.donors[donorID].IsAvailable
}

// fakeMatchReader — in-memory чтение связей заявка-донор
type fakeMatchReader struct {
	matches []*matchdomain.Match
}

func (r *fakeMatchReader) FindByDonor(_ context.Context, donorID string) ([]*matchdomain.Match, error) {
	var result []*matchdomain.Match
	for _, m := range r.matches {
		if m.DonorID == donorID {
			cp := *m
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *fakeMatchReader) FindByRequest(_ context.Context, requestID string) ([]*matchdomain.Match, error) {
	var result []*matchdomain.Match
	for _, m := range r.matches {
		if m.RequestID == requestID {
			cp := *m
			result = append(result, &cp)
		}
	}
	return result, nil
}

// fakeRequestReader — чтение заявок с настраиваемой ошибкой
type fakeRequestReader struct {
	requests map[string]*reqdomain.Request
	err      error
}

func (r *fakeRequestReader) FindByID(_ context.Context, requestID string) (*reqdomain.Request, error) {
	if r.err != nil {
		return nil, r.err
	}
	req, ok := r.requests[requestID]
	if !ok {
		return nil, reqdomain.ErrRequestNotFound
	}
	return req, nil
}

// fakeDonorPublisher накапливает опубликованные события донора
type fakeDonorPublisher struct {
	mu        sync.Mutex
	responses []out.DonorResponseEvent
	statuses  []out.StatusEventData
	err       error
}

func (p *fakeDonorPublisher) PublishDonorResponse(_ context.Context, event out.DonorResponseEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.responses = append(p.responses, event)
	return nil
}

func (p *fakeDonorPublisher) PublishDonorStatusChanged(_ context.Context, data out.StatusEventData) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.statuses = append(p.statuses, data)
	return nil
}

package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/domain"
	reqdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

func testLogger() *logger.Logger {
	return logger.NewLogger("test")
}

// fakeUserRepo — in-memory репозиторий пользователей
type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User // key: user ID
	createErr error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrUserAlreadyExists
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, userID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context, filters out.ListUsersFilters) ([]*domain.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]*domain.User, 0)
	for _, u := range r.users {
		if filters.Role != "" && u.Role != filters.Role {
			continue
		}
		if filters.Status != "" && u.Status != filters.Status {
			continue
		}
		cp := *u
		matched = append(matched, &cp)
	}
	total := len(matched)
	if filters.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filters.Offset:]
	if filters.Limit < len(matched) {
		matched = matched[:filters.Limit]
	}
	return matched, total, nil
}

func (r *fakeUserRepo) byEmail(email string) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

// fakeStockRepo — in-memory запасы крови
type fakeStockRepo struct {
	mu        sync.Mutex
	stock     map[string]domain.StockLevel // key: hospital_id + blood_group
	listErr   error
	upsertErr error
}

func newFakeStockRepo(levels ...domain.StockLevel) *fakeStockRepo {
	r := &fakeStockRepo{stock: make(map[string]domain.StockLevel)}
	for _, l := range levels {
		r.stock[l.HospitalID+"/"+l.BloodGroup] = l
	}
	return r
}

func (r *fakeStockRepo) ListStock(_ context.Context, filters out.StockFilters) ([]domain.StockLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	levels := make([]domain.StockLevel, 0)
	for _, l := range r.stock {
		if filters.HospitalID != "" && l.HospitalID != filters.HospitalID {
			continue
		}
		if filters.BloodGroup != "" && l.BloodGroup != filters.BloodGroup {
			continue
		}
		if filters.OnlyLow && !l.BelowThreshold() {
			continue
		}
		levels = append(levels, l)
	}
	return levels, nil
}

func (r *fakeStockRepo) UpsertStock(_ context.Context, level domain.StockLevel) (*domain.StockLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	level.HospitalName = "City Hospital"
	r.stock[level.HospitalID+"/"+level.BloodGroup] = level
	return &level, nil
}

// fakeStockAlertNotifier записывает предупреждения о низком запасе
type fakeStockAlertNotifier struct {
	mu     sync.Mutex
	alerts []domain.StockLevel
	err    error
}

func (n *fakeStockAlertNotifier) NotifyLowStock(_ context.Context, level domain.StockLevel) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.alerts = append(n.alerts, level)
	return nil
}

func (n *fakeStockAlertNotifier) alertCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.alerts)
}

// fakeVentilatorRepo — in-memory аппараты ИВЛ
type fakeVentilatorRepo struct {
	mu          sync.Mutex
	ventilators map[string]domain.Ventilator
	listErr     error
}

func newFakeVentilatorRepo(ventilators ...domain.Ventilator) *fakeVentilatorRepo {
	r := &fakeVentilatorRepo{ventilators: make(map[string]domain.Ventilator)}
	for _, v := range ventilators {
		r.ventilators[v.ID] = v
	}
	return r
}

func (r *fakeVentilatorRepo) List(_ context.Context, hospitalID, status string) ([]domain.Ventilator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	ventilators := make([]domain.Ventilator, 0)
	for _, v := range r.ventilators {
		if hospitalID != "" && v.HospitalID != hospitalID {
			continue
		}
		if status != "" && v.Status != status {
			continue
		}
		ventilators = append(ventilators, v)
	}
	return ventilators, nil
}

func (r *fakeVentilatorRepo) UpdateStatus(_ context.Context, ventilatorID, status string) (*domain.Ventilator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.ventilators[ventilatorID]
	if !ok {
		return nil, domain.ErrVentilatorNotFound
	}
	v.Status = status
	v.UpdatedAt = time.Now().UTC()
	r.ventilators[ventilatorID] = v
	return &v, nil
}

// fakeRequestReader — чтение заявок для отчетов
type fakeRequestReader struct {
	requests []*reqdomain.Request
	err      error
}

func (r *fakeRequestReader) FindByStatus(_ context.Context, status string, limit int) ([]*reqdomain.Request, error) {
	if r.err != nil {
		return nil, r.err
	}
	matched := make([]*reqdomain.Request, 0)
	for _, req := range r.requests {
		if req.Status == status {
			matched = append(matched, req)
		}
	}
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

// fakeMatchSummaryReader — сводка откликов по заявкам
type fakeMatchSummaryReader struct {
	counts map[string]map[string]int // key: request ID
	err    error
}

func (r *fakeMatchSummaryReader) CountResponses(_ context.Context, requestID string) (map[string]int, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.counts[requestID], nil
}

// fakeMetricsRepo — метрики для обзора системы
type fakeMetricsRepo struct {
	metrics      *in.SystemMetrics
	byStatus     map[string]int
	byType       map[string]int
	distribution map[string]int
	metricsErr   error
	groupErr     error
}

func (r *fakeMetricsRepo) GetSystemMetrics(_ context.Context) (*in.SystemMetrics, error) {
	if r.metricsErr != nil {
		return nil, r.metricsErr
	}
	return r.metrics, nil
}

func (r *fakeMetricsRepo) GetRequestsByStatus(_ context.Context) (map[string]int, error) {
	if r.groupErr != nil {
		return nil, r.groupErr
	}
	return r.byStatus, nil
}

func (r *fakeMetricsRepo) GetRequestsByType(_ context.Context) (map[string]int, error) {
	if r.groupErr != nil {
		return nil, r.groupErr
	}
	return r.byType, nil
}

func (r *fakeMetricsRepo) GetDonorDistribution(_ context.Context) (map[string]int, error) {
	if r.groupErr != nil {
		return nil, r.groupErr
	}
	return r.distribution, nil
}

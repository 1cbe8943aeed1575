package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

// GetOverviewService реализует GetOverviewUseCase
type GetOverviewService struct {
	metricsRepo out.MetricsRepository
	log         *logger.Logger
}

// NewGetOverviewService создает новый сервис обзора системы
func NewGetOverviewService(metricsRepo out.MetricsRepository, log *logger.Logger) *GetOverviewService {
	return &GetOverviewService{
		metricsRepo: metricsRepo,
		log:         log,
	}
}

// Execute собирает сводные метрики и распределения по заявкам и донорам.
// Каждое распределение — best-effort: сбой одного блока не роняет весь обзор.
func (s *GetOverviewService) Execute(ctx context.Context, _ in.GetOverviewInput) (*in.GetOverviewOutput, error) {
	metrics, err := s.metricsRepo.GetSystemMetrics(ctx)
	if err != nil {
		s.log.Error(logger.Entry{
			Action:  "get_system_metrics_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("get system metrics: %w", err)
	}

	output := &in.GetOverviewOutput{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Metrics:   *metrics,
	}

	if byStatus, err := s.metricsRepo.GetRequestsByStatus(ctx); err != nil {
		s.log.Warn(logger.Entry{
			Action:  "requests_by_status_failed",
			Message: err.Error(),
		})
	} else {
		output.RequestsByStatus = byStatus
	}

	if byType, err := s.metricsRepo.GetRequestsByType(ctx); err != nil {
		s.log.Warn(logger.Entry{
			Action:  "requests_by_type_failed",
			Message: err.Error(),
		})
	} else {
		output.RequestsByType = byType
	}

	if distribution, err := s.metricsRepo.GetDonorDistribution(ctx); err != nil {
		s.log.Warn(logger.Entry{
			Action:  "donor_distribution_failed",
			Message: err.Error(),
		})
	} else {
		output.DonorDistribution = distribution
	}

	return output, nil
}

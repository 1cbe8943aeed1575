package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/domain"
	matchdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

// GetBloodStockService реализует GetBloodStockUseCase
type GetBloodStockService struct {
	stockRepo out.StockRepository
	log       *logger.Logger
}

// NewGetBloodStockService создает новый сервис отчета по запасам крови
func NewGetBloodStockService(stockRepo out.StockRepository, log *logger.Logger) *GetBloodStockService {
	return &GetBloodStockService{
		stockRepo: stockRepo,
		log:       log,
	}
}

// Execute возвращает запасы крови по фильтрам, отдельно выделяя строки ниже порога.
func (s *GetBloodStockService) Execute(ctx context.Context, input in.GetBloodStockInput) (*in.GetBloodStockOutput, error) {
	bloodGroup := ""
	if input.BloodGroup != "" {
		bg, err := matchdomain.ParseBloodGroup(input.BloodGroup)
		if err != nil {
			return nil, err
		}
		bloodGroup = string(bg)
	}

	stock, err := s.stockRepo.ListStock(ctx, out.StockFilters{
		HospitalID: input.HospitalID,
		BloodGroup: bloodGroup,
		OnlyLow:    input.OnlyLow,
	})
	if err != nil {
		s.log.Error(logger.Entry{
			Action:  "list_blood_stock_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("list blood stock: %w", err)
	}

	output := &in.GetBloodStockOutput{Stock: stock}
	for _, level := range stock {
		if level.BelowThreshold() {
			output.LowStock = append(output.LowStock, level)
		}
	}

	return output, nil
}

// UpdateBloodStockService реализует UpdateBloodStockUseCase
type UpdateBloodStockService struct {
	stockRepo out.StockRepository
	notifier  out.StockAlertNotifier
	log       *logger.Logger
}

// NewUpdateBloodStockService создает новый сервис корректировки запаса
func NewUpdateBloodStockService(
	stockRepo out.StockRepository,
	notifier out.StockAlertNotifier,
	log *logger.Logger,
) *UpdateBloodStockService {
	return &UpdateBloodStockService{
		stockRepo: stockRepo,
		notifier:  notifier,
		log:       log,
	}
}

// Execute записывает уровень запаса госпиталя. Если итоговый уровень ниже
// порога, госпиталь получает предупреждение — сбой доставки заявку не роняет.
func (s *UpdateBloodStockService) Execute(ctx context.Context, input in.UpdateBloodStockInput) (*in.UpdateBloodStockOutput, error) {
	if input.HospitalID == "" {
		return nil, domain.ErrHospitalNotFound
	}
	bg, err := matchdomain.ParseBloodGroup(input.BloodGroup)
	if err != nil {
		return nil, err
	}
	if input.QuantityML < 0 || input.MinThreshold < 0 {
		return nil, domain.ErrInvalidStockQuantity
	}

	level, err := s.stockRepo.UpsertStock(ctx, domain.StockLevel{
		HospitalID:   input.HospitalID,
		BloodGroup:   string(bg),
		QuantityML:   input.QuantityML,
		MinThreshold: input.MinThreshold,
		UpdatedAt:    time.Now().UTC(),
	})
	if err != nil {
		s.log.Error(logger.Entry{
			Action:  "upsert_blood_stock_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
			Additional: map[string]interface{}{
				"hospital_id": input.HospitalID,
				"blood_group": string(bg),
			},
		})
		return nil, fmt.Errorf("upsert blood stock: %w", err)
	}

	output := &in.UpdateBloodStockOutput{Stock: *level}

	if level.BelowThreshold() {
		output.AlertRaised = true
		// Не возвращаем ошибку — уведомление не критично
		if err := s.notifier.NotifyLowStock(ctx, *level); err != nil {
			s.log.Warn(logger.Entry{
				Action:  "low_stock_alert_failed",
				Message: err.Error(),
				Additional: map[string]interface{}{
					"hospital_id": level.HospitalID,
					"blood_group": level.BloodGroup,
				},
			})
		} else {
			s.log.Info(logger.Entry{
				Action:  "low_stock_alert_sent",
				Message: fmt.Sprintf("stock of %s at hospital %s below threshold", level.BloodGroup, level.HospitalID),
				Additional: map[string]interface{}{
					"hospital_id":   level.HospitalID,
					"blood_group":   level.BloodGroup,
					"quantity_ml":   level.QuantityML,
					"min_threshold": level.MinThreshold,
				},
			})
		}
	}

	return output, nil
}

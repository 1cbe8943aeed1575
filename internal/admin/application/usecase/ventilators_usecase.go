package usecase

import (
	"context"
	"fmt"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

// ListVentilatorsService реализует ListVentilatorsUseCase
type ListVentilatorsService struct {
	ventilators out.VentilatorRepository
	log         *logger.Logger
}

// NewListVentilatorsService создает новый сервис списка аппаратов ИВЛ
func NewListVentilatorsService(ventilators out.VentilatorRepository, log *logger.Logger) *ListVentilatorsService {
	return &ListVentilatorsService{
		ventilators: ventilators,
		log:         log,
	}
}

// Execute возвращает аппараты ИВЛ по фильтрам с агрегатами по статусам.
func (s *ListVentilatorsService) Execute(ctx context.Context, input in.ListVentilatorsInput) (*in.ListVentilatorsOutput, error) {
	if input.Status != "" && !domain.IsValidVentilatorStatus(input.Status) {
		return nil, domain.ErrInvalidVentilatorStatus
	}

	ventilators, err := s.ventilators.List(ctx, input.HospitalID, input.Status)
	if err != nil {
		s.log.Error(logger.Entry{
			Action:  "list_ventilators_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("list ventilators: %w", err)
	}

	byStatus := make(map[string]int)
	for _, v := range ventilators {
		byStatus[v.Status]++
	}

	return &in.ListVentilatorsOutput{
		Ventilators: ventilators,
		ByStatus:    byStatus,
	}, nil
}

// UpdateVentilatorService реализует UpdateVentilatorUseCase
type UpdateVentilatorService struct {
	ventilators out.VentilatorRepository
	log         *logger.Logger
}

// NewUpdateVentilatorService создает новый сервис смены статуса аппарата
func NewUpdateVentilatorService(ventilators out.VentilatorRepository, log *logger.Logger) *UpdateVentilatorService {
	return &UpdateVentilatorService{
		ventilators: ventilators,
		log:         log,
	}
}

// Execute переводит аппарат ИВЛ в новый статус.
func (s *UpdateVentilatorService) Execute(ctx context.Context, input in.UpdateVentilatorInput) (*in.UpdateVentilatorOutput, error) {
	if !domain.IsValidVentilatorStatus(input.Status) {
		return nil, domain.ErrInvalidVentilatorStatus
	}

	ventilator, err := s.ventilators.UpdateStatus(ctx, input.VentilatorID, input.Status)
	if err != nil {
		return nil, err
	}

	s.log.Info(logger.Entry{
		Action:  "ventilator_status_updated",
		Message: fmt.Sprintf("ventilator %s is now %s", ventilator.ID, ventilator.Status),
		Additional: map[string]interface{}{
			"ventilator_id": ventilator.ID,
			"hospital_id":   ventilator.HospitalID,
			"status":        ventilator.Status,
		},
	})

	return &in.UpdateVentilatorOutput{Ventilator: *ventilator}, nil
}

package in

import (
	"context"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/domain"
)

// ListVentilatorsInput — входные данные для списка аппаратов ИВЛ
type ListVentilatorsInput struct {
	HospitalID string `json:"hospital_id,omitempty"` // фильтр по госпиталю
	Status     string `json:"status,omitempty"`      // фильтр по статусу
}

// ListVentilatorsOutput — аппараты ИВЛ с агрегатами по статусам
type ListVentilatorsOutput struct {
	Ventilators []domain.Ventilator `json:"ventilators"`
	ByStatus    map[string]int      `json:"by_status"`
}

// ListVentilatorsUseCase — use case списка аппаратов ИВЛ
type ListVentilatorsUseCase interface {
	Execute(ctx context.Context, input ListVentilatorsInput) (*ListVentilatorsOutput, error)
}

// UpdateVentilatorInput — входные данные для смены статуса аппарата
type UpdateVentilatorInput struct {
	VentilatorID string `json:"ventilator_id"`
	Status       string `json:"status"` // AVAILABLE | IN_USE | MAINTENANCE
}

// UpdateVentilatorOutput — результат смены статуса
type UpdateVentilatorOutput struct {
	Ventilator domain.Ventilator `json:"ventilator"`
}

// UpdateVentilatorUseCase — use case смены статуса аппарата ИВЛ
type UpdateVentilatorUseCase interface {
	Execute(ctx context.Context, input UpdateVentilatorInput) (*UpdateVentilatorOutput, error)
}

package in

import (
	"context"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/domain"
)

// GetBloodStockInput — входные данные для отчета по запасам крови
type GetBloodStockInput struct {
	HospitalID string `json:"hospital_id,omitempty"` // фильтр по госпиталю
	BloodGroup string `json:"blood_group,omitempty"` // фильтр по группе
	OnlyLow    bool   `json:"only_low,omitempty"`    // только ниже порога
}

// GetBloodStockOutput — отчет по запасам крови
type GetBloodStockOutput struct {
	Stock    []domain.StockLevel `json:"stock"`
	LowStock []domain.StockLevel `json:"low_stock,omitempty"`
}

// GetBloodStockUseCase — use case отчета по запасам крови
type GetBloodStockUseCase interface {
	Execute(ctx context.Context, input GetBloodStockInput) (*GetBloodStockOutput, error)
}

// UpdateBloodStockInput — входные данные для корректировки запаса
type UpdateBloodStockInput struct {
	HospitalID   string `json:"hospital_id"`
	BloodGroup   string `json:"blood_group"`
	QuantityML   int    `json:"quantity_ml"`
	MinThreshold int    `json:"min_threshold"`
}

// UpdateBloodStockOutput — результат корректировки
type UpdateBloodStockOutput struct {
	Stock       domain.StockLevel `json:"stock"`
	AlertRaised bool              `json:"alert_raised"` // запас ниже порога
}

// UpdateBloodStockUseCase — use case корректировки запаса крови
type UpdateBloodStockUseCase interface {
	Execute(ctx context.Context, input UpdateBloodStockInput) (*UpdateBloodStockOutput, error)
}

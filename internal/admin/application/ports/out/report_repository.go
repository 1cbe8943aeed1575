package out

import (
	"context"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/domain"
	reqdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
)

// StockFilters — фильтры для отчета по запасам крови
type StockFilters struct {
	HospitalID string
	BloodGroup string
	OnlyLow    bool
}

// StockRepository — запасы крови госпиталей
type StockRepository interface {
	// ListStock возвращает запасы по фильтрам, сначала самые истощенные
	ListStock(ctx context.Context, filters StockFilters) ([]domain.StockLevel, error)

	// UpsertStock записывает уровень запаса и возвращает итоговую строку
	UpsertStock(ctx context.Context, level domain.StockLevel) (*domain.StockLevel, error)
}

// VentilatorRepository — аппараты ИВЛ госпиталей
type VentilatorRepository interface {
	// List возвращает аппараты по фильтрам
	List(ctx context.Context, hospitalID, status string) ([]domain.Ventilator, error)

	// UpdateStatus меняет статус аппарата. false — аппарат не найден.
	UpdateStatus(ctx context.Context, ventilatorID, status string) (*domain.Ventilator, error)
}

// RequestReader — чтение заявок для админских отчетов
type RequestReader interface {
	// FindByStatus возвращает заявки со статусом, срочные первыми
	FindByStatus(ctx context.Context, status string, limit int) ([]*reqdomain.Request, error)
}

// MatchSummaryReader — сводка откликов доноров по заявке
type MatchSummaryReader interface {
	// CountResponses возвращает число связей по каждому ответу
	CountResponses(ctx context.Context, requestID string) (map[string]int, error)
}

// StockAlertNotifier — уведомление госпиталя о низком запасе
type StockAlertNotifier interface {
	NotifyLowStock(ctx context.Context, level domain.StockLevel) error
}

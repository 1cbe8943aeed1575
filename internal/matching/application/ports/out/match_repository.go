package out

import (
	"context"
	"time"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
)

// MatchRepository — интерфейс репозитория для связей заявка-донор
type MatchRepository interface {
	// Insert сохраняет новую связь. Возвращает false, если связь для пары
	// (request_id, donor_id) уже существует — повторный вызов безопасен.
	Insert(ctx context.Context, match *domain.Match) (bool, error)

	// UpdateResponse записывает ответ донора. Возвращает false, если для пары
	// нет записи в статусе PENDING — ответ уже записан или связи не было.
	UpdateResponse(ctx context.Context, requestID, donorID string, response domain.DonorResponse, respondedAt time.Time) (bool, error)

	// FindByRequest возвращает связи заявки по убыванию оценки
	FindByRequest(ctx context.Context, requestID string) ([]*domain.Match, error)

	// FindByDonor возвращает связи донора, последние первыми
	FindByDonor(ctx context.Context, donorID string) ([]*domain.Match, error)
}

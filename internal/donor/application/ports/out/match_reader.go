package out

import (
	"context"

	matchdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	reqdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
)

// MatchReader — чтение связей заявка-донор
type MatchReader interface {
	// FindByDonor возвращает связи донора, последние первыми
	FindByDonor(ctx context.Context, donorID string) ([]*matchdomain.Match, error)

	// FindByRequest возвращает связи заявки по убыванию оценки
	FindByRequest(ctx context.Context, requestID string) ([]*matchdomain.Match, error)
}

// RequestReader — чтение заявок для обогащения ответов донору
type RequestReader interface {
	// FindByID возвращает заявку по ID
	FindByID(ctx context.Context, requestID string) (*reqdomain.Request, error)
}

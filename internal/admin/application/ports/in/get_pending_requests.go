package in

import (
	"context"

	reqdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
)

// GetPendingRequestsInput — входные данные для списка открытых заявок
type GetPendingRequestsInput struct {
	Status string `json:"status"` // по умолчанию PENDING
	Limit  int    `json:"limit"`  // по умолчанию 50
}

// PendingRequestInfo — заявка со сводкой по откликам доноров
type PendingRequestInfo struct {
	Request       *reqdomain.Request `json:"request"`
	MatchedDonors int                `json:"matched_donors"`
	Accepted      int                `json:"accepted"`
	Rejected      int                `json:"rejected"`
}

// GetPendingRequestsOutput — открытые заявки, срочные первыми
type GetPendingRequestsOutput struct {
	Requests   []PendingRequestInfo `json:"requests"`
	TotalCount int                  `json:"total_count"`
}

// GetPendingRequestsUseCase — use case для списка открытых заявок
type GetPendingRequestsUseCase interface {
	Execute(ctx context.Context, input GetPendingRequestsInput) (*GetPendingRequestsOutput, error)
}

package usecase

import (
	"context"
	"fmt"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/admin/domain"
	matchdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	reqdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

// GetPendingRequestsService реализует GetPendingRequestsUseCase
type GetPendingRequestsService struct {
	requests     out.RequestReader
	matchSummary out.MatchSummaryReader
	log          *logger.Logger
}

// NewGetPendingRequestsService создает новый сервис списка открытых заявок
func NewGetPendingRequestsService(
	requests out.RequestReader,
	matchSummary out.MatchSummaryReader,
	log *logger.Logger,
) *GetPendingRequestsService {
	return &GetPendingRequestsService{
		requests:     requests,
		matchSummary: matchSummary,
		log:          log,
	}
}

// Execute возвращает заявки со статусом вместе со сводкой откликов доноров.
func (s *GetPendingRequestsService) Execute(ctx context.Context, input in.GetPendingRequestsInput) (*in.GetPendingRequestsOutput, error) {
	status := input.Status
	if status == "" {
		status = reqdomain.StatusPending
	}
	if !reqdomain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	limit := input.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	requests, err := s.requests.FindByStatus(ctx, status, limit)
	if err != nil {
		s.log.Error(logger.Entry{
			Action:  "find_requests_by_status_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("find requests by status: %w", err)
	}

	infos := make([]in.PendingRequestInfo, 0, len(requests))
	for _, req := range requests {
		info := in.PendingRequestInfo{Request: req}

		// Сводка по откликам — best-effort, заявка важнее счетчиков
		counts, err := s.matchSummary.CountResponses(ctx, req.ID)
		if err != nil {
			s.log.Warn(logger.Entry{
				Action:    "count_responses_failed",
				Message:   err.Error(),
				RequestID: req.ID,
			})
		} else {
			for response, n := range counts {
				info.MatchedDonors += n
				switch response {
				case string(matchdomain.ResponseAccepted):
					info.Accepted = n
				case string(matchdomain.ResponseRejected):
					info.Rejected = n
				}
			}
		}

		infos = append(infos, info)
	}

	return &in.GetPendingRequestsOutput{
		Requests:   infos,
		TotalCount: len(infos),
	}, nil
}

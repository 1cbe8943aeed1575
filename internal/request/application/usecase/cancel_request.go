package usecase

import (
	"context"
	"fmt"

	matchout "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

// CancelRequestService — use case отмены заявки пациентом
type CancelRequestService struct {
	requestRepo out.RequestRepository
	patientRepo matchout.PatientRepository
	publisher   out.EventPublisher
	log         *logger.Logger
}

// NewCancelRequestService создает новый сервис отмены заявки
func NewCancelRequestService(
	requestRepo out.RequestRepository,
	patientRepo matchout.PatientRepository,
	publisher out.EventPublisher,
	log *logger.Logger,
) *CancelRequestService {
	return &CancelRequestService{
		requestRepo: requestRepo,
		patientRepo: patientRepo,
		publisher:   publisher,
		log:         log,
	}
}

// Execute отменяет заявку. Отменить можно только свою и только
// нетерминальную заявку.
func (s *CancelRequestService) Execute(ctx context.Context, input in.CancelRequestInput) (*in.CancelRequestOutput, error) {
	req, err := s.requestRepo.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, fmt.Errorf("find request: %w", err)
	}

	patient, err := s.patientRepo.FindByUserID(ctx, input.PatientUserID)
	if err != nil {
		return nil, fmt.Errorf("find patient: %w", err)
	}
	if req.PatientID != patient.ID {
		return nil, domain.ErrUnauthorized
	}

	if domain.IsTerminal(req.Status) {
		return nil, domain.ErrRequestAlreadyResolved
	}

	cancelled, err := s.requestRepo.UpdateStatusIf(ctx, req.ID, req.Status, domain.StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("cancel request: %w", err)
	}
	if !cancelled {
		// Статус сменился между чтением и записью
		return nil, domain.ErrRequestAlreadyResolved
	}

	s.log.Info(logger.Entry{
		Action:    "request_cancelled",
		Message:   fmt.Sprintf("patient=%s", req.PatientID),
		RequestID: req.ID,
	})

	req.Status = domain.StatusCancelled
	data := out.RequestEventData{
		RequestID:   req.ID,
		PatientID:   req.PatientID,
		HospitalID:  req.HospitalID,
		RequestType: req.RequestType,
		Urgency:     req.Urgency,
		Status:      req.Status,
	}
	// Не возвращаем ошибку — событие не критично для результата
	if err := s.publisher.PublishRequestEvent(ctx, "REQUEST_CANCELLED", data); err != nil {
		s.log.Error(logger.Entry{
			Action:    "publish_request_event_failed",
			Message:   err.Error(),
			RequestID: req.ID,
			Error:     &logger.ErrObj{Msg: err.Error()},
		})
	}

	return &in.CancelRequestOutput{
		RequestID: req.ID,
		Status:    req.Status,
	}, nil
}

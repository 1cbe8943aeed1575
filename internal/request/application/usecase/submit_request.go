package usecase

import (
	"context"
	"fmt"
	"time"

	matchin "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/application/ports/in"
	matchout "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/application/ports/out"
	matchdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/utils"
)

// SubmitRequestService — use case создания заявки. Заявка сохраняется
// до любых побочных эффектов; для крови и плазмы сразу запускается
// подбор и уведомление доноров.
type SubmitRequestService struct {
	requestRepo out.RequestRepository
	patientRepo matchout.PatientRepository
	notifyUC    matchin.NotifyMatchedDonorsUseCase
	publisher   out.EventPublisher
	log         *logger.Logger
}

// NewSubmitRequestService создает новый сервис создания заявки
func NewSubmitRequestService(
	requestRepo out.RequestRepository,
	patientRepo matchout.PatientRepository,
	notifyUC matchin.NotifyMatchedDonorsUseCase,
	publisher out.EventPublisher,
	log *logger.Logger,
) *SubmitRequestService {
	return &SubmitRequestService{
		requestRepo: requestRepo,
		patientRepo: patientRepo,
		notifyUC:    notifyUC,
		publisher:   publisher,
		log:         log,
	}
}

// Execute выполняет создание новой заявки
func (s *SubmitRequestService) Execute(ctx context.Context, input in.SubmitRequestInput) (*in.SubmitRequestOutput, error) {
	if !domain.ValidType(input.RequestType) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRequestType, input.RequestType)
	}
	if !domain.ValidUrgency(input.Urgency) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidUrgency, input.Urgency)
	}

	req := &domain.Request{
		ID:          utils.NewUUID(),
		HospitalID:  input.HospitalID,
		RequestType: input.RequestType,
		QuantityML:  input.QuantityML,
		Urgency:     input.Urgency,
		RequiredBy:  input.RequiredBy,
		Status:      domain.StatusPending,
		Reason:      input.Reason,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if req.NeedsDonorMatching() {
		if input.QuantityML <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if input.BloodGroup == "" {
			return nil, domain.ErrMissingBloodGroup
		}
		group, err := matchdomain.ParseBloodGroup(input.BloodGroup)
		if err != nil {
			return nil, err
		}
		req.BloodGroup = &group
	}

	// Заявку создает пациент от своего имени
	patient, err := s.patientRepo.FindByUserID(ctx, input.PatientUserID)
	if err != nil {
		return nil, fmt.Errorf("find patient: %w", err)
	}
	req.PatientID = patient.ID

	if err := s.requestRepo.Create(ctx, req); err != nil {
		s.log.Error(logger.Entry{
			Action:  "create_request_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		return nil, fmt.Errorf("create request: %w", err)
	}

	s.log.Info(logger.Entry{
		Action:    "request_submitted",
		Message:   fmt.Sprintf("type=%s urgency=%s patient=%s", req.RequestType, req.Urgency, req.PatientID),
		RequestID: req.ID,
	})

	// Не возвращаем ошибку — событие не критично для результата
	s.publishEvent(ctx, "REQUEST_CREATED", req)

	output := &in.SubmitRequestOutput{
		RequestID: req.ID,
		Status:    req.Status,
	}

	// Заявка уже надежно сохранена: сбой подбора не отменяет ее,
	// оператор может перезапустить уведомление повторным вызовом
	if req.NeedsDonorMatching() {
		notified, err := s.notifyUC.Execute(ctx, matchin.NotifyMatchedDonorsInput{RequestID: req.ID})
		if err != nil {
			s.log.Error(logger.Entry{
				Action:    "match_donors_failed",
				Message:   err.Error(),
				RequestID: req.ID,
				Error:     &logger.ErrObj{Msg: err.Error()},
			})
		} else {
			output.MatchedDonors = notified.MatchedDonors
		}
	}

	return output, nil
}

// publishEvent публикует событие заявки в RabbitMQ
func (s *SubmitRequestService) publishEvent(ctx context.Context, eventType string, req *domain.Request) {
	data := out.RequestEventData{
		RequestID:   req.ID,
		PatientID:   req.PatientID,
		HospitalID:  req.HospitalID,
		RequestType: req.RequestType,
		Urgency:     req.Urgency,
		Status:      req.Status,
	}
	if req.BloodGroup != nil {
		data.BloodGroup = string(*req.BloodGroup)
	}

	if err := s.publisher.PublishRequestEvent(ctx, eventType, data); err != nil {
		s.log.Error(logger.Entry{
			Action:    "publish_request_event_failed",
			Message:   err.Error(),
			RequestID: req.ID,
			Error:     &logger.ErrObj{Msg: err.Error()},
		})
	}
}

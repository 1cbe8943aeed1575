package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
	reqdomain "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/domain"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

// RecordDonorResponseService — use case записи ответа донора. Ответ donor'а,
// переход статуса заявки и внутрисистемные уведомления пишутся одной
// транзакцией; внешние каналы (email, SMS) уходят после коммита.
type RecordDonorResponseService struct {
	requestStore out.RequestStore
	matchRepo    out.MatchRepository
	donorRepo    out.DonorRepository
	patientRepo  out.PatientRepository
	hospitalRepo out.HospitalRepository
	notifier     out.Notifier
	publisher    out.MatchEventPublisher
	tx           out.TxManager
	log          *logger.Logger
}

// NewRecordDonorResponseService создает новый сервис записи ответа донора
func NewRecordDonorResponseService(
	requestStore out.RequestStore,
	matchRepo out.MatchRepository,
	donorRepo out.DonorRepository,
	patientRepo out.PatientRepository,
	hospitalRepo out.HospitalRepository,
	notifier out.Notifier,
	publisher out.MatchEventPublisher,
	tx out.TxManager,
	log *logger.Logger,
) *RecordDonorResponseService {
	return &RecordDonorResponseService{
		requestStore: requestStore,
		matchRepo:    matchRepo,
		donorRepo:    donorRepo,
		patientRepo:  patientRepo,
		hospitalRepo: hospitalRepo,
		notifier:     notifier,
		publisher:    publisher,
		tx:           tx,
		log:          log,
	}
}

// Execute записывает ответ донора на предложение по заявке.
//
// Гонка нескольких доноров разрешается условными UPDATE: ответ пишется
// только в PENDING-связь, заявка переводится в APPROVED только из PENDING.
// Заявку выигрывает ровно один принявший донор; остальные ответы
// фиксируются, но статус заявки и уведомления не трогают.
func (s *RecordDonorResponseService) Execute(ctx context.Context, input in.RecordDonorResponseInput) (*in.RecordDonorResponseOutput, error) {
	response := domain.DonorResponse(input.Response)
	if !domain.ValidResponse(response) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidResponse, input.Response)
	}

	req, err := s.requestStore.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, fmt.Errorf("find request: %w", err)
	}

	// Профили для уведомлений резолвим до транзакции: если принявшего
	// донора или адресатов нельзя собрать, не меняем вообще ничего
	donor, err := s.donorRepo.FindByID(ctx, input.DonorID)
	if err != nil {
		return nil, fmt.Errorf("find donor: %w", err)
	}

	var (
		patient  *domain.Patient
		hospital *domain.Hospital
	)
	if response == domain.ResponseAccepted {
		patient, err = s.patientRepo.FindByID(ctx, req.PatientID)
		if err != nil {
			return nil, fmt.Errorf("find patient: %w", err)
		}
		if req.HospitalID != nil {
			hospital, err = s.hospitalRepo.FindByID(ctx, *req.HospitalID)
			if err != nil {
				return nil, fmt.Errorf("find hospital: %w", err)
			}
		}
	}

	output := &in.RecordDonorResponseOutput{
		RequestID: input.RequestID,
		DonorID:   input.DonorID,
		Status:    req.Status,
	}

	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		recorded, err := s.matchRepo.UpdateResponse(txCtx, input.RequestID, input.DonorID, response, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("update match response: %w", err)
		}
		if !recorded {
			// Нет PENDING-связи: ответ уже записан или донора не звали
			return nil
		}
		output.Recorded = true

		if response != domain.ResponseAccepted {
			return nil
		}

		approved, err := s.requestStore.UpdateStatusIf(txCtx, input.RequestID, reqdomain.StatusPending, reqdomain.StatusApproved)
		if err != nil {
			return fmt.Errorf("approve request: %w", err)
		}
		if !approved {
			// Заявку уже одобрил другой донор
			return nil
		}
		output.Approved = true
		output.Status = reqdomain.StatusApproved

		// Внутрисистемные уведомления — часть транзакции: откат снимает и их
		return s.notifyPartiesInApp(txCtx, req, donor, patient, hospital)
	})
	if err != nil {
		return nil, err
	}

	if output.Recorded {
		s.publishResponseEvent(ctx, input, output.Approved)
	}
	if output.Approved {
		s.notifyPartiesExternal(ctx, donor, patient, hospital)
	}

	s.log.Info(logger.Entry{
		Action:    "donor_response_recorded",
		Message:   fmt.Sprintf("request=%s donor=%s response=%s recorded=%t approved=%t", input.RequestID, input.DonorID, response, output.Recorded, output.Approved),
		RequestID: input.RequestID,
		DonorID:   input.DonorID,
	})

	return output, nil
}

// notifyPartiesInApp создает внутрисистемные уведомления пациенту и госпиталю
// о принявшем доноре внутри текущей транзакции.
func (s *RecordDonorResponseService) notifyPartiesInApp(ctx context.Context, req *reqdomain.Request, donor *domain.Donor, patient *domain.Patient, hospital *domain.Hospital) error {
	entityType := "request"
	title := "Donor found"
	body := fmt.Sprintf("Donor %s accepted the donation request.", donor.FullName)

	n := out.InAppNotification{
		UserID:            patient.UserID,
		Title:             title,
		Message:           body,
		NotificationType:  "APPROVAL",
		Priority:          "HIGH",
		RelatedEntityType: &entityType,
		RelatedEntityID:   &req.ID,
	}
	if err := s.notifier.SendInApp(ctx, n); err != nil {
		return fmt.Errorf("notify patient: %w", err)
	}

	if hospital != nil {
		n.UserID = hospital.UserID
		if err := s.notifier.SendInApp(ctx, n); err != nil {
			return fmt.Errorf("notify hospital: %w", err)
		}
	}
	return nil
}

// notifyPartiesExternal шлет email и SMS после коммита. Каналы независимы,
// сбои только логируются.
func (s *RecordDonorResponseService) notifyPartiesExternal(ctx context.Context, donor *domain.Donor, patient *domain.Patient, hospital *domain.Hospital) {
	subject := "Donor found"
	body := fmt.Sprintf("Donor %s (%s) accepted the donation request. Contact: %s.", donor.FullName, donor.BloodGroup.Symbol(), donor.Phone)

	targets := []struct {
		email string
		phone string
	}{
		{patient.Email, patient.Phone},
	}
	if hospital != nil {
		targets = append(targets, struct {
			email string
			phone string
		}{hospital.Email, hospital.Phone})
	}

	for _, t := range targets {
		if err := s.notifier.SendEmail(ctx, t.email, subject, body); err != nil {
			s.log.Warn(logger.Entry{
				Action:  "accept_email_failed",
				Message: err.Error(),
				DonorID: donor.ID,
			})
		}
		if err := s.notifier.SendSMS(ctx, t.phone, body); err != nil {
			s.log.Warn(logger.Entry{
				Action:  "accept_sms_failed",
				Message: err.Error(),
				DonorID: donor.ID,
			})
		}
	}
}

// publishResponseEvent публикует событие ответа донора. Не возвращаем
// ошибку — событие не критично для результата.
func (s *RecordDonorResponseService) publishResponseEvent(ctx context.Context, input in.RecordDonorResponseInput, approved bool) {
	eventType := "DONOR_RESPONSE_RECORDED"
	if approved {
		eventType = "REQUEST_APPROVED"
	}
	if err := s.publisher.PublishMatchEvent(ctx, eventType, out.MatchEventData{
		RequestID: input.RequestID,
		DonorID:   &input.DonorID,
		Response:  input.Response,
	}); err != nil {
		s.log.Error(logger.Entry{
			Action:    "publish_donor_response_failed",
			Message:   err.Error(),
			RequestID: input.RequestID,
			DonorID:   input.DonorID,
			Error:     &logger.ErrObj{Msg: err.Error()},
		})
	}
}

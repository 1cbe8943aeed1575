package usecase

import (
	"context"
	"fmt"

	matchout "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/application/ports/in"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/request/application/ports/out"
	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/shared/logger"
)

// ListMyRequestsService — use case списка заявок пациента
type ListMyRequestsService struct {
	requestRepo out.RequestRepository
	patientRepo matchout.PatientRepository
	log         *logger.Logger
}

// NewListMyRequestsService создает новый сервис списка заявок
func NewListMyRequestsService(
	requestRepo out.RequestRepository,
	patientRepo matchout.PatientRepository,
	log *logger.Logger,
) *ListMyRequestsService {
	return &ListMyRequestsService{
		requestRepo: requestRepo,
		patientRepo: patientRepo,
		log:         log,
	}
}

// Execute возвращает заявки пациента, последние первыми
func (s *ListMyRequestsService) Execute(ctx context.Context, input in.ListMyRequestsInput) (*in.ListMyRequestsOutput, error) {
	patient, err := s.patientRepo.FindByUserID(ctx, input.PatientUserID)
	if err != nil {
		return nil, fmt.Errorf("find patient: %w", err)
	}

	requests, err := s.requestRepo.FindByPatientID(ctx, patient.ID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}

	return &in.ListMyRequestsOutput{Requests: requests}, nil
}

// GetRequestService — use case чтения одной заявки
type GetRequestService struct {
	requestRepo out.RequestRepository
	log         *logger.Logger
}

// NewGetRequestService создает новый сервис чтения заявки
func NewGetRequestService(requestRepo out.RequestRepository, log *logger.Logger) *GetRequestService {
	return &GetRequestService{requestRepo: requestRepo, log: log}
}

// Execute возвращает заявку по ID
func (s *GetRequestService) Execute(ctx context.Context, input in.GetRequestInput) (*in.GetRequestOutput, error) {
	req, err := s.requestRepo.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, fmt.Errorf("find request: %w", err)
	}
	return &in.GetRequestOutput{Request: req}, nil
}

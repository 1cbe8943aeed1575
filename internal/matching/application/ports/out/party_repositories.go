package out

import (
	"context"

	"github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
)

// PatientRepository — интерфейс репозитория пациентов
type PatientRepository interface {
	// FindByID возвращает пациента по ID
	FindByID(ctx context.Context, patientID string) (*domain.Patient, error)

	// FindByUserID возвращает пациента по ID пользователя
	FindByUserID(ctx context.Context, userID string) (*domain.Patient, error)
}

// HospitalRepository — интерфейс репозитория госпиталей
type HospitalRepository interface {
	// FindByID возвращает госпиталь по ID
	FindByID(ctx context.Context, hospitalID string) (*domain.Hospital, error)
}

package in

import (
	"context"
	"time"
)

// SubmitRequestInput — входные данные для создания заявки
type SubmitRequestInput struct {
	PatientUserID string     `json:"-"` // из JWT
	HospitalID    *string    `json:"hospital_id,omitempty"`
	RequestType   string     `json:"request_type"` // BLOOD | PLASMA | VENTILATOR
	BloodGroup    string     `json:"blood_group,omitempty"`
	QuantityML    int        `json:"quantity_ml"`
	Urgency       string     `json:"urgency"` // CRITICAL | URGENT | NORMAL
	RequiredBy    *time.Time `json:"required_by,omitempty"`
	Reason        *string    `json:"reason,omitempty"`
}

// SubmitRequestOutput — результат создания заявки
type SubmitRequestOutput struct {
	RequestID     string `json:"request_id"`
	Status        string `json:"status"`
	MatchedDonors int    `json:"matched_donors"` // скольким донорам разослано
}

// SubmitRequestUseCase — интерфейс use-case создания заявки.
// Заявка сохраняется до любых уведомлений; для крови и плазмы подбор
// доноров запускается сразу после сохранения.
type SubmitRequestUseCase interface {
	Execute(ctx context.Context, input SubmitRequestInput) (*SubmitRequestOutput, error)
}

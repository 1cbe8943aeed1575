package domain

import (
	"time"

	matching "github.com/Vinayreddy765/vitalaid-healthcare-management-system/internal/matching/domain"
)

// RequestType — тип заявки.
const (
	TypeBlood      = "BLOOD"
	TypePlasma     = "PLASMA"
	TypeVentilator = "VENTILATOR"
)

// Уровни срочности заявки.
const (
	UrgencyCritical = "CRITICAL"
	UrgencyUrgent   = "URGENT"
	UrgencyNormal   = "NORMAL"
)

// Request представляет основную сущность заявки на кровь, плазму или ИВЛ.
type Request struct {
	ID          string               `json:"id" db:"id"`
	PatientID   string               `json:"patient_id" db:"patient_id"`
	HospitalID  *string              `json:"hospital_id,omitempty" db:"hospital_id"`
	RequestType string               `json:"request_type" db:"request_type"`
	BloodGroup  *matching.BloodGroup `json:"blood_group,omitempty" db:"blood_group"`
	QuantityML  int                  `json:"quantity_ml" db:"quantity_ml"`
	Urgency     string               `json:"urgency" db:"urgency"`
	RequiredBy  *time.Time           `json:"required_by,omitempty" db:"required_by"`
	Status      string               `json:"status" db:"status"`
	Reason      *string              `json:"reason,omitempty" db:"reason"`
	Notes       *string              `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at" db:"updated_at"`
}

// NeedsDonorMatching сообщает, требует ли заявка подбора доноров.
// Заявки на аппараты ИВЛ обрабатываются госпиталем напрямую.
func (r *Request) NeedsDonorMatching() bool {
	return r.RequestType == TypeBlood || r.RequestType == TypePlasma
}

// DonationType возвращает вид донации для заявки на кровь или плазму.
func (r *Request) DonationType() (matching.DonationType, error) {
	switch r.RequestType {
	case TypeBlood:
		return matching.DonationBlood, nil
	case TypePlasma:
		return matching.DonationPlasma, nil
	default:
		return "", matching.ErrInvalidDonationType
	}
}

// ValidType проверяет тип заявки.
func ValidType(t string) bool {
	return t == TypeBlood || t == TypePlasma || t == TypeVentilator
}

// ValidUrgency проверяет уровень срочности.
func ValidUrgency(u string) bool {
	return u == UrgencyCritical || u == UrgencyUrgent || u == UrgencyNormal
}

package domain

import "time"

// StockLevel — запас крови одной группы в госпитале
type StockLevel struct {
	HospitalID   string    `json:"hospital_id" db:"hospital_id"`
	HospitalName string    `json:"hospital_name" db:"hospital_name"`
	BloodGroup   string    `json:"blood_group" db:"blood_group"`
	QuantityML   int       `json:"quantity_ml" db:"quantity_ml"`
	MinThreshold int       `json:"min_threshold" db:"min_threshold"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// BelowThreshold сообщает, опустился ли запас ниже минимума
func (s *StockLevel) BelowThreshold() bool {
	return s.QuantityML < s.MinThreshold
}

// Ventilator — аппарат ИВЛ госпиталя
type Ventilator struct {
	ID         string    `json:"id" db:"id"`
	HospitalID string    `json:"hospital_id" db:"hospital_id"`
	Status     string    `json:"status" db:"status"` // AVAILABLE | IN_USE | MAINTENANCE
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Статусы аппаратов ИВЛ
const (
	VentilatorAvailable   = "AVAILABLE"
	VentilatorInUse       = "IN_USE"
	VentilatorMaintenance = "MAINTENANCE"
)

// IsValidVentilatorStatus проверяет корректность статуса аппарата
func IsValidVentilatorStatus(status string) bool {
	switch status {
	case VentilatorAvailable, VentilatorInUse, VentilatorMaintenance:
		return true
	default:
		return false
	}
}

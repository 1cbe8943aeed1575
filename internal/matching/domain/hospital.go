package domain

// Hospital — госпиталь, к которому привязана заявка. Координаты
// используются как точка отсчёта при подборе доноров.
type Hospital struct {
	ID           string  `json:"id" db:"id"`
	UserID       string  `json:"user_id" db:"user_id"`
	HospitalName string  `json:"hospital_name" db:"hospital_name"`
	Email        string  `json:"email" db:"email"`
	Phone        string  `json:"phone" db:"phone"`
	Latitude     float64 `json:"latitude" db:"latitude"`
	Longitude    float64 `json:"longitude" db:"longitude"`
	IsVerified   bool    `json:"is_verified" db:"is_verified"`
}

// HasLocation сообщает, известна ли геопозиция госпиталя.
func (h *Hospital) HasLocation() bool {
	return HasKnownLocation(h.Latitude, h.Longitude)
}

package domain

import "time"

// DonorResponse — ответ донора на предложение по заявке.
type DonorResponse string

const (
	ResponsePending  DonorResponse = "PENDING"
	ResponseAccepted DonorResponse = "ACCEPTED"
	ResponseRejected DonorResponse = "REJECTED"
)

// ValidResponse проверяет, что ответ донора является терминальным решением.
func ValidResponse(r DonorResponse) bool {
	return r == ResponseAccepted || r == ResponseRejected
}

// Match — связь заявки и подобранного донора. Ключ составной
// (RequestID, DonorID); ответ донора после записи не меняется.
type Match struct {
	RequestID    string        `json:"request_id" db:"request_id"`
	DonorID      string        `json:"donor_id" db:"donor_id"`
	Score        float64       `json:"match_score" db:"match_score"`
	DistanceKm   float64       `json:"distance_km" db:"distance_km"`
	Response     DonorResponse `json:"donor_response" db:"donor_response"`
	ResponseTime *time.Time    `json:"response_time,omitempty" db:"response_time"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
}

// RankedDonor — результат подбора: донор с оценкой и расстоянием
// до госпиталя заявки.
type RankedDonor struct {
	Donor      *Donor  `json:"donor"`
	Score      float64 `json:"score"`
	DistanceKm float64 `json:"distance_km"`
}

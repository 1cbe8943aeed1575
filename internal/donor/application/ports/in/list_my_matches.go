package in

import (
	"context"
	"time"
)

// ListMyMatchesInput — входные данные для списка предложений донора
type ListMyMatchesInput struct {
	DonorUserID string `json:"-"` // из JWT
}

// MatchView — предложение донору, обогащенное данными заявки
type MatchView struct {
	RequestID    string     `json:"request_id"`
	RequestType  string     `json:"request_type"`
	BloodGroup   string     `json:"blood_group,omitempty"`
	Urgency      string     `json:"urgency"`
	Status       string     `json:"status"` // статус заявки
	Response     string     `json:"response"`
	Score        float64    `json:"score"`
	DistanceKm   float64    `json:"distance_km"`
	ResponseTime *time.Time `json:"response_time,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ListMyMatchesOutput — предложения донора, последние первыми
type ListMyMatchesOutput struct {
	Matches []MatchView `json:"matches"`
}

// ListMyMatchesUseCase — интерфейс use-case списка предложений донора
type ListMyMatchesUseCase interface {
	Execute(ctx context.Context, input ListMyMatchesInput) (*ListMyMatchesOutput, error)
}

package in

import "context"

// GetOverviewInput — входные данные для получения обзора системы
type GetOverviewInput struct {
	// Пустая структура, параметры не требуются
}

// GetOverviewOutput — выходные данные обзора системы
type GetOverviewOutput struct {
	Timestamp         string         `json:"timestamp"`
	Metrics           SystemMetrics  `json:"metrics"`
	RequestsByStatus  map[string]int `json:"requests_by_status"`
	RequestsByType    map[string]int `json:"requests_by_type"`
	DonorDistribution map[string]int `json:"donor_distribution,omitempty"`
}

// SystemMetrics — метрики системы
type SystemMetrics struct {
	OpenRequests        int     `json:"open_requests"`
	CriticalRequests    int     `json:"critical_requests"`
	RequestsToday       int     `json:"requests_today"`
	TotalDonors         int     `json:"total_donors"`
	AvailableDonors     int     `json:"available_donors"`
	MatchesTotal        int     `json:"matches_total"`
	MatchesAccepted     int     `json:"matches_accepted"`
	AcceptanceRate      float64 `json:"acceptance_rate"`
	LowStockEntries     int     `json:"low_stock_entries"`
	VentilatorsFree     int     `json:"ventilators_free"`
	VentilatorsInUse    int     `json:"ventilators_in_use"`
	VentilatorsDown     int     `json:"ventilators_down"`
	UnreadNotifications int     `json:"unread_notifications"`
}

// GetOverviewUseCase — use case для получения обзора системы
type GetOverviewUseCase interface {
	Execute(ctx context.Context, input GetOverviewInput) (*GetOverviewOutput, error)
}

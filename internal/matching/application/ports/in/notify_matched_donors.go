package in

import "context"

// NotifyMatchedDonorsInput — входные данные для уведомления подобранных доноров
type NotifyMatchedDonorsInput struct {
	RequestID string `json:"request_id"`
}

// NotifyMatchedDonorsOutput — результат уведомления
type NotifyMatchedDonorsOutput struct {
	RequestID     string `json:"request_id"`
	MatchedDonors int    `json:"matched_donors"` // сколько доноров подобрано
	NotifiedNow   int    `json:"notified_now"`   // сколько уведомлено этим вызовом
}

// NotifyMatchedDonorsUseCase — интерфейс use-case уведомления топ-K доноров.
// Повторный вызов для той же заявки не создает дублей.
type NotifyMatchedDonorsUseCase interface {
	Execute(ctx context.Context, input NotifyMatchedDonorsInput) (*NotifyMatchedDonorsOutput, error)
}

package domain

// Статусы жизненного цикла заявки. Переходы только вперед:
// PENDING -> APPROVED -> FULFILLED, либо REJECTED/CANCELLED
// из любого нетерминального состояния.
const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusFulfilled = "FULFILLED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

var allowedTransitions = map[string][]string{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusFulfilled, StatusRejected, StatusCancelled},
}

// ValidStatus проверяет, что статус — один из известных.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusFulfilled, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// CanTransition проверяет допустимость перехода статуса заявки.
// Терминальные статусы (FULFILLED, REJECTED, CANCELLED) не меняются.
func CanTransition(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal сообщает, завершен ли жизненный цикл заявки.
func IsTerminal(status string) bool {
	return status == StatusFulfilled || status == StatusRejected || status == StatusCancelled
}

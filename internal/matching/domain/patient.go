package domain

// Patient — профиль пациента, от имени которого создаются заявки.
// Контактные данные берутся из связанного пользователя.
type Patient struct {
	ID       string  `json:"id" db:"id"`
	UserID   string  `json:"user_id" db:"user_id"`
	FullName string  `json:"full_name" db:"full_name"`
	Email    string  `json:"email" db:"email"`
	Phone    string  `json:"phone" db:"phone"`
	City     *string `json:"city,omitempty" db:"city"`
}

package in

import (
	"context"
)

// CreateUserInput — входные данные для создания пользователя.
// Profile несет атрибуты роли: full_name и blood_group для доноров,
// full_name для пациентов, hospital_name и координаты для госпиталей.
type CreateUserInput struct {
	Email    string
	Phone    string
	Password string // plain text, будет захеширован
	Role     string // DONOR | PATIENT | HOSPITAL
	Status   string // по умолчанию ACTIVE
	Profile  map[string]interface{}
}

// CreateUserOutput — результат создания пользователя
type CreateUserOutput struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"` // ISO8601
}

// CreateUserUseCase — интерфейс use case создания пользователя
type CreateUserUseCase interface {
	Execute(ctx context.Context, input CreateUserInput) (*CreateUserOutput, error)
}

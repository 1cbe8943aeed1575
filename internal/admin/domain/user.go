package domain

import (
	"time"
)

// User представляет пользователя системы
type User struct {
	ID           string
	Email        string
	Phone        string
	Role         string // DONOR | PATIENT | HOSPITAL | ADMIN
	Status       string // ACTIVE | INACTIVE | BANNED
	PasswordHash string
	Profile      map[string]interface{} // атрибуты профиля роли (full_name, blood_group, ...)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Допустимые роли
const (
	RoleDonor    = "DONOR"
	RolePatient  = "PATIENT"
	RoleHospital = "HOSPITAL"
	RoleAdmin    = "ADMIN"
)

// Допустимые статусы
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
	StatusBanned   = "BANNED"
)

// IsValidRole проверяет корректность роли
func IsValidRole(role string) bool {
	switch role {
	case RoleDonor, RolePatient, RoleHospital, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsValidStatus проверяет корректность статуса
func IsValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusInactive, StatusBanned:
		return true
	default:
		return false
	}
}

package domain

import "time"

// Интервалы между донациями в днях. День порога включительно:
// донор, сдавший кровь ровно 90 дней назад, уже считается годным.
const (
	BloodDonationIntervalDays  = 90
	PlasmaDonationIntervalDays = 14
)

// MinDonorWeightKg — минимальный вес донора для бонуса к оценке.
const MinDonorWeightKg = 50.0

// Donor — профиль донора в контексте подбора. Email и Phone
// подтягиваются из связанного пользователя.
type Donor struct {
	ID                string     `json:"id" db:"id"`
	UserID            string     `json:"user_id" db:"user_id"`
	FullName          string     `json:"full_name" db:"full_name"`
	Email             string     `json:"email" db:"email"`
	Phone             string     `json:"phone" db:"phone"`
	BloodGroup        BloodGroup `json:"blood_group" db:"blood_group"`
	Latitude          float64    `json:"latitude" db:"latitude"`
	Longitude         float64    `json:"longitude" db:"longitude"`
	WeightKg          float64    `json:"weight_kg" db:"weight_kg"`
	LastDonationDate  *time.Time `json:"last_donation_date,omitempty" db:"last_donation_date"`
	IsAvailable       bool       `json:"is_available" db:"is_available"`
	MedicalConditions *string    `json:"medical_conditions,omitempty" db:"medical_conditions"`
	City              *string    `json:"city,omitempty" db:"city"`
}

// HasLocation сообщает, известна ли геопозиция донора.
func (d *Donor) HasLocation() bool {
	return HasKnownLocation(d.Latitude, d.Longitude)
}

// DaysSinceLastDonation возвращает число полных дней с последней донации
// и false, если донаций ещё не было.
func (d *Donor) DaysSinceLastDonation(now time.Time) (int, bool) {
	if d.LastDonationDate == nil {
		return 0, false
	}
	days := int(now.Sub(*d.LastDonationDate).Hours() / 24)
	return days, true
}

// EligibleFor проверяет годность донора к донации данного вида: донор
// доступен и с последней донации прошёл минимальный интервал.
func (d *Donor) EligibleFor(donationType DonationType, now time.Time) bool {
	if !d.IsAvailable {
		return false
	}
	days, donated := d.DaysSinceLastDonation(now)
	if !donated {
		return true
	}
	return days >= donationInterval(donationType)
}

func donationInterval(donationType DonationType) int {
	if donationType == DonationPlasma {
		return PlasmaDonationIntervalDays
	}
	return BloodDonationIntervalDays
}

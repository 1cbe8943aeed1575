package domain

import "time"

// Веса компонентов оценки совместимости донора.
const (
	scoreExactGroup      = 40.0
	scoreCompatibleGroup = 30.0
	scoreDistanceMax     = 30.0
	scoreRecencyMax      = 20.0
	scoreWeightBonus     = 10.0

	bloodRecencySpanDays  = 30.0
	plasmaRecencySpanDays = 16.0
)

// ScoreDonor вычисляет оценку донора в диапазоне [0, 100] из четырёх
// компонентов: совпадение группы, расстояние, давность последней донации
// и вес донора. Донор без геопозиции считается локальным (distanceKm = 0).
func ScoreDonor(donor *Donor, requested BloodGroup, donationType DonationType, distanceKm float64, now time.Time) float64 {
	var score float64

	if donor.BloodGroup == requested {
		score += scoreExactGroup
	} else {
		score += scoreCompatibleGroup
	}

	if d := scoreDistanceMax * (1 - distanceKm/MaxSearchRadiusKm); d > 0 {
		score += d
	}

	score += recencyScore(donor, donationType, now)

	if donor.WeightKg >= MinDonorWeightKg {
		score += scoreWeightBonus
	}

	return clampScore(score)
}

// recencyScore поощряет доноров, у которых с последней донации прошло
// заметно больше минимального интервала. Никогда не сдававший донор
// получает максимум сразу.
func recencyScore(donor *Donor, donationType DonationType, now time.Time) float64 {
	days, donated := donor.DaysSinceLastDonation(now)
	if !donated {
		return scoreRecencyMax
	}

	threshold := float64(donationInterval(donationType))
	span := bloodRecencySpanDays
	if donationType == DonationPlasma {
		span = plasmaRecencySpanDays
	}

	s := (float64(days) - threshold) / span * scoreRecencyMax
	if s < 0 {
		return 0
	}
	if s > scoreRecencyMax {
		return scoreRecencyMax
	}
	return s
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

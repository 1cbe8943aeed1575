package domain

import "math"

// earthRadiusKm — средний радиус Земли.
const earthRadiusKm = 6371.0

// MaxSearchRadiusKm — предельный радиус поиска доноров, км.
const MaxSearchRadiusKm = 50.0

// HaversineKm вычисляет расстояние по большому кругу между двумя точками
// в километрах по формуле гаверсинусов.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degToRad(lat2 - lat1)
	dLon := degToRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degToRad(lat1))*math.Cos(degToRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// ValidCoordinates проверяет, что широта и долгота лежат в допустимых
// диапазонах [-90, 90] и [-180, 180].
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// HasKnownLocation сообщает, задана ли у точки реальная геопозиция.
// Пара (0, 0) считается признаком незаполненной локации.
func HasKnownLocation(lat, lon float64) bool {
	return lat != 0 || lon != 0
}

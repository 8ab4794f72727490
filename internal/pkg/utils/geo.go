package utils

import (
	"fmt"
	"strconv"
)

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateBounds проверяет, что прямоугольник непустой и лежит в допустимых пределах.
// Leaflet может отдавать долготы за пределами ±180 при прокрутке мира, поэтому
// долготы только упорядочиваются, но не ограничиваются.
func ValidateBounds(minLat, minLon, maxLat, maxLon float64) bool {
	if minLat < -90 || maxLat > 90 {
		return false
	}
	return minLat <= maxLat && minLon <= maxLon
}

// BBoxParam форматирует bbox в порядке minLon,minLat,maxLon,maxLat
func BBoxParam(minLat, minLon, maxLat, maxLon float64) string {
	return fmt.Sprintf("%s,%s,%s,%s",
		formatCoord(minLon), formatCoord(minLat), formatCoord(maxLon), formatCoord(maxLat))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

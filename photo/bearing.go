package photo

import "math"

// Bearing returns the great-circle initial bearing from prev to curr in degrees,
// shifted by adjustment and normalized to [0, 360)
func Bearing(prev, curr Coordinate, adjustment float64) float64 {
	phi1 := prev.Lat * math.Pi / 180
	phi2 := curr.Lat * math.Pi / 180
	dLambda := (curr.Lon - prev.Lon) * math.Pi / 180

	y := math.Sin(dLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda)
	theta := math.Atan2(y, x) * 180 / math.Pi

	return NormalizeDegrees(theta + adjustment)
}

// NormalizeDegrees folds any angle into [0, 360)
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(math.Mod(deg, 360)+360, 360)
	// a tiny negative input can round up to exactly 360
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// Package geo provides the great-circle and fuel-cost arithmetic used to
// derive job travel figures.
package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometers between two
// WGS-84 coordinates, via the haversine formula. Symmetric in its two
// coordinate pairs and zero for identical points.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// FuelCost returns the fuel cost for covering distanceKm at the given
// efficiency (km per liter) and price (currency per liter). Performs no
// validation: efficiency must be checked as strictly positive by the
// caller, otherwise the result is Inf or NaN.
func FuelCost(distanceKm, efficiency, price float64) float64 {
	return (distanceKm / efficiency) * price
}

// Package tracking provides the synthetic courier-position generator used in
// place of real GPS telemetry. Advancing the position is a scheduled mutation
// run by the background worker, never a side effect of reading an order.
package tracking

import (
	"math"
	"time"

	"tapto-backend/internal/domain"
)

const (
	// kmPerDegree converts straight-line coordinate distance to kilometers.
	kmPerDegree = 111.0
	// stepFraction of the remaining vector covered per advance.
	stepFraction = 0.10
	// arrivalKm below which the courier is snapped onto the destination.
	arrivalKm = 0.05
	// speedKmh assumed for the linear ETA estimate.
	speedKmh = 20.0
)

// Origin is the dispatch hub a courier starts from.
func Origin() domain.GeoPoint {
	return domain.GeoPoint{Lat: 27.7172, Lng: 85.3240}
}

// Destination is the fixed drop-off coordinate the simulation approaches.
func Destination() domain.GeoPoint {
	return domain.GeoPoint{Lat: 27.6710, Lng: 85.4298}
}

// DistanceKm returns the straight-line distance between two coordinates,
// treating coordinate space as flat.
func DistanceKm(a, b domain.GeoPoint) float64 {
	dLat := a.Lat - b.Lat
	dLng := a.Lng - b.Lng
	return math.Sqrt(dLat*dLat+dLng*dLng) * kmPerDegree
}

// ETAMinutes is a linear estimate of the remaining travel time.
func ETAMinutes(distanceKm float64) int {
	if distanceKm <= 0 {
		return 0
	}
	return int(math.Ceil(distanceKm / speedKmh * 60))
}

// Advance moves the courier 10% of the remaining vector toward the
// destination. The exponential approach never reaches the destination on its
// own, so positions within arrivalKm are clamped onto it.
func Advance(current domain.GeoPoint, now time.Time) domain.GeoPoint {
	dest := Destination()
	next := domain.GeoPoint{
		Lat:         current.Lat + (dest.Lat-current.Lat)*stepFraction,
		Lng:         current.Lng + (dest.Lng-current.Lng)*stepFraction,
		LastUpdated: now,
	}
	if DistanceKm(next, dest) < arrivalKm {
		next.Lat = dest.Lat
		next.Lng = dest.Lng
	}
	return next
}

// Arrived reports whether a position has been clamped onto the destination.
func Arrived(p domain.GeoPoint) bool {
	dest := Destination()
	return p.Lat == dest.Lat && p.Lng == dest.Lng
}

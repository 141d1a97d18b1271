package geo

import (
	"fmt"
	"math"
	"strings"
)

const (
	earthRadiusKm = 6371.0
	kmPerMile     = 1.609344
)

type Point struct {
	Lat float64
	Lng float64
}

func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180 &&
		!math.IsNaN(p.Lat) && !math.IsNaN(p.Lng)
}

type Unit string

const (
	Kilometers Unit = "km"
	Miles      Unit = "mi"
)

func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "km", "kilometers":
		return Kilometers, nil
	case "mi", "miles":
		return Miles, nil
	default:
		return "", fmt.Errorf("unknown distance unit %q", s)
	}
}

// FromKm converts a distance in kilometers to u.
func (u Unit) FromKm(km float64) float64 {
	if u == Miles {
		return km / kmPerMile
	}
	return km
}

// ToKm converts a distance expressed in u to kilometers.
func (u Unit) ToKm(d float64) float64 {
	if u == Miles {
		return d * kmPerMile
	}
	return d
}

// Distance is the great-circle distance between a and b in kilometers (haversine).
func Distance(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	// Rounding can push h just past 1 for antipodal points.
	h = math.Min(1, math.Max(0, h))

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

package discovery

import (
	"sort"

	"github.com/SergeyKozhin/studyspot-backend/internal/pkg/geo"
)

// SortByDistance returns the events ordered by distance from origin with
// DistanceKm filled in. The sort is stable; events without coordinates keep
// their relative order after all located events.
func SortByDistance(events []Event, origin geo.Point) []Event {
	res := make([]Event, len(events))
	for i := range events {
		res[i] = events[i].clone()
		if c := res[i].Coordinates; c != nil {
			d := geo.Distance(origin, *c)
			res[i].DistanceKm = &d
		} else {
			res[i].DistanceKm = nil
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		a, b := res[i].DistanceKm, res[j].DistanceKm
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})

	return res
}

// MapPins keeps only events that can be placed on a map.
func MapPins(events []Event) []Event {
	res := make([]Event, 0, len(events))
	for _, e := range events {
		if e.Coordinates != nil {
			res = append(res, e)
		}
	}
	return res
}

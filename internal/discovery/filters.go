package discovery

import (
	"strings"

	"github.com/SergeyKozhin/studyspot-backend/internal/pkg/geo"
)

// Filters narrows the event list. A zero field means no constraint.
type Filters struct {
	// Distance is the maximum distance in Unit; events with unknown distance fail it.
	Distance *float64 `yaml:"distance,omitempty"`
	Unit     geo.Unit `yaml:"unit,omitempty"`
	// Attendees is the maximum number of accepted attendees.
	Attendees *int   `yaml:"attendees,omitempty"`
	Noise     string `yaml:"noise,omitempty"`
	Location  string `yaml:"location,omitempty"`
}

func (f Filters) Empty() bool {
	return f.Distance == nil && f.Attendees == nil && f.Noise == "" && f.Location == ""
}

func (f Filters) Match(e *Event) bool {
	if f.Attendees != nil && e.AcceptedCount > *f.Attendees {
		return false
	}

	if f.Distance != nil {
		if e.DistanceKm == nil {
			return false
		}
		unit := f.Unit
		if unit == "" {
			unit = geo.Kilometers
		}
		if !(unit.FromKm(*e.DistanceKm) <= *f.Distance) {
			return false
		}
	}

	if f.Noise != "" && !hasTag(e.Tags, f.Noise) {
		return false
	}

	if f.Location != "" && !hasTag(e.Tags, f.Location) {
		return false
	}

	return true
}

// Apply returns the matching events in their original order.
func (f Filters) Apply(events []Event) []Event {
	res := make([]Event, 0, len(events))
	for i := range events {
		if f.Match(&events[i]) {
			res = append(res, events[i])
		}
	}
	return res
}

func hasTag(tags []string, want string) bool {
	want = strings.TrimSpace(want)
	for _, t := range tags {
		if strings.EqualFold(strings.TrimSpace(t), want) {
			return true
		}
	}
	return false
}

// Package discovery builds the user's view of nearby study sessions: it loads
// and enriches events, orders them by distance, filters them and applies
// optimistic RSVP/save toggles that are later reconciled with the backend.
package discovery

import (
	"context"
	"time"

	"github.com/SergeyKozhin/studyspot-backend/internal/client"
	"github.com/SergeyKozhin/studyspot-backend/internal/pkg/geo"
)

// Event is an event as seen by one user.
type Event struct {
	ID            int64
	CreatorID     int64
	Title         string
	Description   string
	Location      string
	StartsAt      time.Time
	Capacity      int
	Tags          []string
	Coordinates   *geo.Point
	AcceptedCount int
	IsRSVPed      bool
	IsSaved       bool

	// DistanceKm is set by SortByDistance; nil when the event has no coordinates.
	DistanceKm *float64
}

func (e *Event) clone() Event {
	cp := *e
	if e.Tags != nil {
		cp.Tags = append([]string(nil), e.Tags...)
	}
	if e.Coordinates != nil {
		c := *e.Coordinates
		cp.Coordinates = &c
	}
	if e.DistanceKm != nil {
		d := *e.DistanceKm
		cp.DistanceKm = &d
	}
	return cp
}

func fromClient(e *client.Event) *Event {
	res := &Event{
		ID:            e.ID,
		CreatorID:     e.CreatorID,
		Title:         e.Title,
		Description:   e.Description,
		Location:      e.Location,
		StartsAt:      e.StartsAt,
		Capacity:      e.Capacity,
		Tags:          e.Tags,
		AcceptedCount: e.AcceptedCount,
	}
	if e.NextOccurrence != nil {
		res.StartsAt = *e.NextOccurrence
	}
	if e.Coordinates != nil {
		if p := (geo.Point{Lat: e.Coordinates.Lat, Lng: e.Coordinates.Lng}); p.Valid() {
			res.Coordinates = &p
		}
	}

	return res
}

// Backend is the part of the REST API discovery talks to.
type Backend interface {
	ListEvents(ctx context.Context) ([]*client.Event, error)
	GetRSVP(ctx context.Context, eventID int64) (*client.RSVP, error)
	SetRSVP(ctx context.Context, eventID int64, status string) (*client.RSVP, error)
	ClearRSVP(ctx context.Context, eventID int64) (*client.RSVP, error)
	IsSaved(ctx context.Context, eventID int64) (bool, error)
	SaveEvent(ctx context.Context, eventID int64) error
	UnsaveEvent(ctx context.Context, eventID int64) error
}

type geocoder interface {
	Geocode(ctx context.Context, address string) (geo.Point, error)
}

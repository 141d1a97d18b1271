package events

import (
	"time"

	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

type eventDTO struct {
	ID             int64     `db:"id"`
	CreatorID      int64     `db:"creator_id"`
	Title          string    `db:"title"`
	Description    string    `db:"description"`
	Location       string    `db:"location"`
	Lat            *float64  `db:"lat"`
	Lng            *float64  `db:"lng"`
	StartsAt       time.Time `db:"starts_at"`
	Capacity       int       `db:"capacity"`
	Tags           []string  `db:"tags"`
	RepeatType     int       `db:"repeat_type"`
	RecurrenceRule string    `db:"recurrence_rule"`
	CreatedAt      time.Time `db:"created_at"`
	AcceptedIDs    []int64   `db:"accepted_ids"`
	InvitedIDs     []int64   `db:"invited_ids"`
	DeclinedIDs    []int64   `db:"declined_ids"`
}

func mapToEvent(dto *eventDTO) *model.Event {
	var coords *model.Coordinates
	if dto.Lat != nil && dto.Lng != nil {
		coords = &model.Coordinates{Lat: *dto.Lat, Lng: *dto.Lng}
	}

	return &model.Event{
		ID:          dto.ID,
		Coordinates: coords,
		RepeatRule:  dto.RecurrenceRule,
		AcceptedIDs: dto.AcceptedIDs,
		InvitedIDs:  dto.InvitedIDs,
		DeclinedIDs: dto.DeclinedIDs,
		CreatedAt:   dto.CreatedAt,
		EventCreate: model.EventCreate{
			CreatorID:   dto.CreatorID,
			Title:       dto.Title,
			Description: dto.Description,
			Location:    dto.Location,
			StartsAt:    dto.StartsAt,
			Capacity:    dto.Capacity,
			Tags:        dto.Tags,
			RepeatType:  model.RepeatType(dto.RepeatType),
		},
	}
}

func mapToEvents(dtos []*eventDTO) []*model.Event {
	res := make([]*model.Event, len(dtos))
	for i, d := range dtos {
		res[i] = mapToEvent(d)
	}

	return res
}

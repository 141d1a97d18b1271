package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

func (s *Service) CreateEvent(ctx context.Context, info *model.EventCreate) (*model.Event, error) {
	repeatRule, err := getRule(info.RepeatType, info.StartsAt)
	if err != nil {
		return nil, err
	}

	info.Tags = model.NormalizeTags(info.Tags)

	event := &model.Event{
		Coordinates: s.geocode(ctx, info.Location),
		RepeatRule:  repeatRule,
		AcceptedIDs: []int64{},
		InvitedIDs:  []int64{},
		DeclinedIDs: []int64{},
		CreatedAt:   s.now(),
		EventCreate: *info,
	}

	id, err := s.events.CreateEvent(ctx, s.db, event)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.CreateEvent: %w", err)
	}
	event.ID = id

	event.NextOccurrence, err = nextOccurrence(event, s.now())
	if err != nil {
		return nil, err
	}

	return event, nil
}

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

// GetEventByID fills in coordinates that could not be resolved when the event was created.
func (s *Service) GetEventByID(ctx context.Context, id int64) (*model.Event, error) {
	event, err := s.events.GetEventByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	if event.Coordinates == nil && event.Location != "" {
		if coords := s.geocode(ctx, event.Location); coords != nil {
			if err := s.events.UpdateCoordinates(ctx, s.db, event.ID, coords); err != nil {
				s.logger.Errorw("failed to store coordinates", "event_id", event.ID, "err", err)
			} else {
				event.Coordinates = coords
			}
		}
	}

	event.NextOccurrence, err = nextOccurrence(event, s.now())
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (s *Service) GetEvents(ctx context.Context) ([]*model.Event, error) {
	events, err := s.events.GetEvents(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEvents: %w", err)
	}

	now := s.now()
	for _, e := range events {
		e.NextOccurrence, err = nextOccurrence(e, now)
		if err != nil {
			return nil, err
		}
	}

	return events, nil
}

// GetOccurrencesBetween returns events with an occurrence starting in [from, to).
// NextOccurrence is set to that occurrence.
func (s *Service) GetOccurrencesBetween(ctx context.Context, from, to time.Time) ([]*model.Event, error) {
	candidates, err := s.events.GetEventsStartingBetween(ctx, s.db, from, to)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEventsStartingBetween: %w", err)
	}

	var res []*model.Event
	for _, e := range candidates {
		occurrence, err := firstOccurrenceIn(e, from, to)
		if err != nil {
			return nil, err
		}
		if occurrence == nil {
			continue
		}

		e.NextOccurrence = occurrence
		res = append(res, e)
	}

	return res, nil
}

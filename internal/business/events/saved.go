package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

func (s *Service) IsSaved(ctx context.Context, userID, eventID int64) (bool, error) {
	saved, err := s.saved.IsSaved(ctx, s.db, userID, eventID)
	if err != nil {
		return false, fmt.Errorf("savedRepository.IsSaved: %w", err)
	}

	return saved, nil
}

func (s *Service) SaveEvent(ctx context.Context, userID, eventID int64) error {
	if _, err := s.events.GetEventByID(ctx, s.db, eventID); err != nil {
		return fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	if err := s.saved.Save(ctx, s.db, userID, eventID); err != nil {
		return fmt.Errorf("savedRepository.Save: %w", err)
	}

	return nil
}

func (s *Service) UnsaveEvent(ctx context.Context, userID, eventID int64) error {
	if err := s.saved.Unsave(ctx, s.db, userID, eventID); err != nil {
		return fmt.Errorf("savedRepository.Unsave: %w", err)
	}

	return nil
}

// GetSavedEvents returns saved events, most recently saved first.
func (s *Service) GetSavedEvents(ctx context.Context, userID int64) ([]*model.Event, error) {
	ids, err := s.saved.GetSavedEventIDs(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("savedRepository.GetSavedEventIDs: %w", err)
	}

	if len(ids) == 0 {
		return []*model.Event{}, nil
	}

	events, err := s.events.GetEventsByIDs(ctx, s.db, ids)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEventsByIDs: %w", err)
	}

	byID := make(map[int64]*model.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	now := s.now()
	res := make([]*model.Event, 0, len(ids))
	for _, id := range ids {
		e, ok := byID[id]
		if !ok {
			continue
		}

		e.NextOccurrence, err = nextOccurrence(e, now)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}

	return res, nil
}

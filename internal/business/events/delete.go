package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

// DeleteEvent removes the event; only its creator may do that.
func (s *Service) DeleteEvent(ctx context.Context, userID, id int64) error {
	event, err := s.events.GetEventByID(ctx, s.db, id)
	if err != nil {
		return fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	if event.CreatorID != userID {
		return model.ErrForbidden
	}

	if err := s.events.DeleteEvent(ctx, s.db, id); err != nil {
		return fmt.Errorf("eventsRepository.DeleteEvent: %w", err)
	}

	return nil
}

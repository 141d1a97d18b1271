package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/studyspot-backend/internal/database"
	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

func (s *Service) GetRSVP(ctx context.Context, userID, eventID int64) (*model.RSVP, error) {
	if _, err := s.events.GetEventByID(ctx, s.db, eventID); err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	status, err := s.attendees.GetStatus(ctx, s.db, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("attendeesRepository.GetStatus: %w", err)
	}

	count, err := s.attendees.CountAccepted(ctx, s.db, eventID)
	if err != nil {
		return nil, fmt.Errorf("attendeesRepository.CountAccepted: %w", err)
	}

	return &model.RSVP{
		EventID:       eventID,
		UserID:        userID,
		Status:        status,
		AcceptedCount: count,
	}, nil
}

// SetRSVP changes the user's answer. The event row is locked so the capacity
// check and the write see the same attendee list.
func (s *Service) SetRSVP(ctx context.Context, userID, eventID int64, status model.RSVPStatus) (*model.RSVP, error) {
	var (
		event    *model.Event
		previous model.RSVPStatus
		count    int
	)

	err := database.InTx(ctx, s.db, func(tx database.Tx) error {
		if err := s.events.GetEventForUpdate(ctx, tx, eventID); err != nil {
			return fmt.Errorf("eventsRepository.GetEventForUpdate: %w", err)
		}

		var err error
		event, err = s.events.GetEventByID(ctx, tx, eventID)
		if err != nil {
			return fmt.Errorf("eventsRepository.GetEventByID: %w", err)
		}

		if err := s.checkBlocked(ctx, tx, userID, event.CreatorID); err != nil {
			return err
		}

		previous, err = s.attendees.GetStatus(ctx, tx, eventID, userID)
		if err != nil {
			return fmt.Errorf("attendeesRepository.GetStatus: %w", err)
		}

		switch status {
		case model.RSVPNone:
			if err := s.attendees.DeleteStatus(ctx, tx, eventID, userID); err != nil {
				return fmt.Errorf("attendeesRepository.DeleteStatus: %w", err)
			}
		case model.RSVPAccepted, model.RSVPDeclined:
			if status == model.RSVPAccepted && previous != model.RSVPAccepted && event.Full() {
				return model.ErrEventFull
			}
			if err := s.attendees.SetStatus(ctx, tx, eventID, userID, status); err != nil {
				return fmt.Errorf("attendeesRepository.SetStatus: %w", err)
			}
		default:
			return fmt.Errorf("unsupported rsvp status %q", status)
		}

		count, err = s.attendees.CountAccepted(ctx, tx, eventID)
		if err != nil {
			return fmt.Errorf("attendeesRepository.CountAccepted: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if status == model.RSVPAccepted && previous != model.RSVPAccepted && userID != event.CreatorID {
		s.notify(ctx, &model.NotificationCreate{
			UserID:  event.CreatorID,
			Kind:    model.NotificationRSVP,
			EventID: &event.ID,
			ActorID: &userID,
			Text:    fmt.Sprintf("Someone is joining %s (%d going)", event.Title, count),
		})
	}

	return &model.RSVP{
		EventID:       eventID,
		UserID:        userID,
		Status:        status,
		AcceptedCount: count,
	}, nil
}

// Invite marks users as invited; only the creator may invite.
func (s *Service) Invite(ctx context.Context, userID, eventID int64, inviteeIDs []int64) error {
	event, err := s.events.GetEventByID(ctx, s.db, eventID)
	if err != nil {
		return fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	if event.CreatorID != userID {
		return model.ErrForbidden
	}

	seen := make(map[int64]struct{}, len(inviteeIDs))
	ids := make([]int64, 0, len(inviteeIDs))
	for _, id := range inviteeIDs {
		if id == userID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		blocked, err := s.blocks.IsBlockedEitherWay(ctx, s.db, userID, id)
		if err != nil {
			return fmt.Errorf("blocks.IsBlockedEitherWay: %w", err)
		}
		if blocked {
			continue
		}

		ids = append(ids, id)
	}

	if err := s.attendees.Invite(ctx, s.db, eventID, ids); err != nil {
		return fmt.Errorf("attendeesRepository.Invite: %w", err)
	}

	ns := make([]*model.NotificationCreate, len(ids))
	for i, id := range ids {
		ns[i] = &model.NotificationCreate{
			UserID:  id,
			Kind:    model.NotificationInvite,
			EventID: &event.ID,
			ActorID: &userID,
			Text:    fmt.Sprintf("You were invited to %s", event.Title),
		}
	}
	s.notify(ctx, ns...)

	return nil
}

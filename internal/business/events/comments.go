package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

func (s *Service) AddComment(ctx context.Context, userID, eventID int64, body string) (*model.Comment, error) {
	event, err := s.events.GetEventByID(ctx, s.db, eventID)
	if err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	if err := s.checkBlocked(ctx, s.db, userID, event.CreatorID); err != nil {
		return nil, err
	}

	comment, err := s.comments.CreateComment(ctx, s.db, &model.Comment{
		EventID:  eventID,
		AuthorID: userID,
		Body:     body,
	})
	if err != nil {
		return nil, fmt.Errorf("commentsRepository.CreateComment: %w", err)
	}

	if userID != event.CreatorID {
		s.notify(ctx, &model.NotificationCreate{
			UserID:  event.CreatorID,
			Kind:    model.NotificationComment,
			EventID: &event.ID,
			ActorID: &userID,
			Text:    fmt.Sprintf("New comment on %s", event.Title),
		})
	}

	return comment, nil
}

func (s *Service) GetComments(ctx context.Context, eventID int64) ([]*model.Comment, error) {
	if _, err := s.events.GetEventByID(ctx, s.db, eventID); err != nil {
		return nil, fmt.Errorf("eventsRepository.GetEventByID: %w", err)
	}

	comments, err := s.comments.GetComments(ctx, s.db, eventID)
	if err != nil {
		return nil, fmt.Errorf("commentsRepository.GetComments: %w", err)
	}

	return comments, nil
}

package social

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/studyspot-backend/internal/database"
	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

// Block also drops follows in both directions.
func (s *Service) Block(ctx context.Context, userID, targetID int64) error {
	if userID == targetID {
		return model.ErrForbidden
	}

	if _, err := s.users.GetUserByID(ctx, s.db, targetID); err != nil {
		return fmt.Errorf("usersRepository.GetUserByID: %w", err)
	}

	return database.InTx(ctx, s.db, func(tx database.Tx) error {
		if err := s.social.Block(ctx, tx, userID, targetID); err != nil {
			return fmt.Errorf("socialRepository.Block: %w", err)
		}
		return nil
	})
}

func (s *Service) Unblock(ctx context.Context, userID, targetID int64) error {
	if err := s.social.Unblock(ctx, s.db, userID, targetID); err != nil {
		return fmt.Errorf("socialRepository.Unblock: %w", err)
	}

	return nil
}

func (s *Service) Blocks(ctx context.Context, userID int64) ([]*model.User, error) {
	ids, err := s.social.GetBlockedIDs(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("socialRepository.GetBlockedIDs: %w", err)
	}

	return s.usersByIDs(ctx, ids)
}

func (s *Service) Notifications(ctx context.Context, userID int64) ([]*model.Notification, error) {
	ns, err := s.notifications.GetNotifications(ctx, s.db, userID, notificationsLimit)
	if err != nil {
		return nil, fmt.Errorf("notificationsRepository.GetNotifications: %w", err)
	}

	return ns, nil
}

func (s *Service) MarkNotificationRead(ctx context.Context, userID, id int64) error {
	if err := s.notifications.MarkRead(ctx, s.db, userID, id); err != nil {
		return fmt.Errorf("notificationsRepository.MarkRead: %w", err)
	}

	return nil
}

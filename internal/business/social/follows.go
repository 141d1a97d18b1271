package social

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

func (s *Service) Follow(ctx context.Context, userID, targetID int64) error {
	if userID == targetID {
		return model.ErrForbidden
	}

	target, err := s.users.GetUserByID(ctx, s.db, targetID)
	if err != nil {
		return fmt.Errorf("usersRepository.GetUserByID: %w", err)
	}

	blocked, err := s.blocked(ctx, userID, targetID)
	if err != nil {
		return err
	}
	if blocked {
		return model.ErrBlocked
	}

	if err := s.social.Follow(ctx, s.db, userID, targetID); err != nil {
		return fmt.Errorf("socialRepository.Follow: %w", err)
	}

	if err := s.notifier.Notify(ctx, &model.NotificationCreate{
		UserID:  target.ID,
		Kind:    model.NotificationFollow,
		ActorID: &userID,
		Text:    "You have a new follower",
	}); err != nil {
		s.logger.Errorw("failed to notify about follow", "user_id", target.ID, "err", err)
	}

	return nil
}

func (s *Service) Unfollow(ctx context.Context, userID, targetID int64) error {
	if err := s.social.Unfollow(ctx, s.db, userID, targetID); err != nil {
		return fmt.Errorf("socialRepository.Unfollow: %w", err)
	}

	return nil
}

func (s *Service) Followers(ctx context.Context, userID int64) ([]*model.User, error) {
	ids, err := s.social.GetFollowerIDs(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("socialRepository.GetFollowerIDs: %w", err)
	}

	return s.usersByIDs(ctx, ids)
}

func (s *Service) Following(ctx context.Context, userID int64) ([]*model.User, error) {
	ids, err := s.social.GetFollowingIDs(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("socialRepository.GetFollowingIDs: %w", err)
	}

	return s.usersByIDs(ctx, ids)
}

// Friends are users followed in both directions.
func (s *Service) Friends(ctx context.Context, userID int64) ([]*model.User, error) {
	ids, err := s.social.GetFriendIDs(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("socialRepository.GetFriendIDs: %w", err)
	}

	return s.usersByIDs(ctx, ids)
}

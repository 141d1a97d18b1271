package social

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

// Register creates the user and issues an access token for it.
func (s *Service) Register(ctx context.Context, info *model.UserCreate) (*model.User, string, error) {
	id, err := s.users.CreateUser(ctx, s.db, info)
	if err != nil {
		return nil, "", fmt.Errorf("usersRepository.CreateUser: %w", err)
	}

	token, err := s.tokens.CreateToken(id)
	if err != nil {
		return nil, "", fmt.Errorf("create token: %w", err)
	}

	return &model.User{ID: id, Notify: true, UserCreate: *info}, token, nil
}

// GetProfile hides users that block or are blocked by the viewer.
func (s *Service) GetProfile(ctx context.Context, viewerID, userID int64) (*model.User, error) {
	blocked, err := s.blocked(ctx, viewerID, userID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, model.ErrNoRecord
	}

	user, err := s.users.GetUserByID(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("usersRepository.GetUserByID: %w", err)
	}

	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, upd *model.UserUpdate) (*model.User, error) {
	if err := s.users.UpdateUser(ctx, s.db, userID, upd); err != nil {
		return nil, fmt.Errorf("usersRepository.UpdateUser: %w", err)
	}

	user, err := s.users.GetUserByID(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("usersRepository.GetUserByID: %w", err)
	}

	return user, nil
}

func (s *Service) UpdatePushToken(ctx context.Context, userID int64, token string) error {
	if err := s.users.UpdateUserPushToken(ctx, s.db, userID, token); err != nil {
		return fmt.Errorf("usersRepository.UpdateUserPushToken: %w", err)
	}

	return nil
}

func (s *Service) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.users.DeleteUser(ctx, s.db, userID); err != nil {
		return fmt.Errorf("usersRepository.DeleteUser: %w", err)
	}

	return nil
}

// SearchUsers drops users the viewer is blocked with from the page.
func (s *Service) SearchUsers(ctx context.Context, viewerID int64, filter model.UserSearchFilter) ([]*model.User, error) {
	users, err := s.users.SearchUsers(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("usersRepository.SearchUsers: %w", err)
	}

	res := make([]*model.User, 0, len(users))
	for _, u := range users {
		blocked, err := s.blocked(ctx, viewerID, u.ID)
		if err != nil {
			return nil, err
		}
		if !blocked {
			res = append(res, u)
		}
	}

	return res, nil
}

package social

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/studyspot-backend/internal/database"
	"github.com/SergeyKozhin/studyspot-backend/internal/model"
	"go.uber.org/zap"
)

const notificationsLimit = 100

type Service struct {
	db            database.PGX
	logger        *zap.SugaredLogger
	users         usersRepository
	social        socialRepository
	notifications notificationsRepository
	notifier      notifier
	tokens        tokenIssuer
}

type usersRepository interface {
	CreateUser(ctx context.Context, q database.Queryable, user *model.UserCreate) (int64, error)
	GetUserByID(ctx context.Context, q database.Queryable, id int64) (*model.User, error)
	GetUsersByIDs(ctx context.Context, q database.Queryable, ids []int64) ([]*model.User, error)
	SearchUsers(ctx context.Context, q database.Queryable, filter model.UserSearchFilter) ([]*model.User, error)
	UpdateUser(ctx context.Context, q database.Queryable, id int64, upd *model.UserUpdate) error
	UpdateUserPushToken(ctx context.Context, q database.Queryable, id int64, token string) error
	DeleteUser(ctx context.Context, q database.Queryable, id int64) error
}

type socialRepository interface {
	Follow(ctx context.Context, q database.Queryable, followerID, followeeID int64) error
	Unfollow(ctx context.Context, q database.Queryable, followerID, followeeID int64) error
	GetFollowerIDs(ctx context.Context, q database.Queryable, userID int64) ([]int64, error)
	GetFollowingIDs(ctx context.Context, q database.Queryable, userID int64) ([]int64, error)
	GetFriendIDs(ctx context.Context, q database.Queryable, userID int64) ([]int64, error)
	Block(ctx context.Context, q database.Queryable, blockerID, blockedID int64) error
	Unblock(ctx context.Context, q database.Queryable, blockerID, blockedID int64) error
	GetBlockedIDs(ctx context.Context, q database.Queryable, blockerID int64) ([]int64, error)
	IsBlockedEitherWay(ctx context.Context, q database.Queryable, a, b int64) (bool, error)
}

type notificationsRepository interface {
	GetNotifications(ctx context.Context, q database.Queryable, userID int64, limit int) ([]*model.Notification, error)
	MarkRead(ctx context.Context, q database.Queryable, userID, id int64) error
}

type notifier interface {
	Notify(ctx context.Context, ns ...*model.NotificationCreate) error
}

type tokenIssuer interface {
	CreateToken(id int64) (string, error)
}

func NewService(
	db database.PGX,
	logger *zap.SugaredLogger,
	users usersRepository,
	social socialRepository,
	notifications notificationsRepository,
	notifier notifier,
	tokens tokenIssuer,
) *Service {
	return &Service{
		db:            db,
		logger:        logger,
		users:         users,
		social:        social,
		notifications: notifications,
		notifier:      notifier,
		tokens:        tokens,
	}
}

func (s *Service) blocked(ctx context.Context, a, b int64) (bool, error) {
	if a == b {
		return false, nil
	}

	blocked, err := s.social.IsBlockedEitherWay(ctx, s.db, a, b)
	if err != nil {
		return false, fmt.Errorf("socialRepository.IsBlockedEitherWay: %w", err)
	}

	return blocked, nil
}

func (s *Service) usersByIDs(ctx context.Context, ids []int64) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}

	users, err := s.users.GetUsersByIDs(ctx, s.db, ids)
	if err != nil {
		return nil, fmt.Errorf("usersRepository.GetUsersByIDs: %w", err)
	}

	return users, nil
}

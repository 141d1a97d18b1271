package notifications

import (
	"context"
	"fmt"
	"strconv"

	"github.com/SergeyKozhin/studyspot-backend/internal/database"
	"github.com/SergeyKozhin/studyspot-backend/internal/model"
	"github.com/SergeyKozhin/studyspot-backend/internal/pkg/fcm"
	"go.uber.org/zap"
)

// Sender stores in-app notifications and mirrors them to push when the user allows it.
type Sender struct {
	db            database.PGX
	logger        *zap.SugaredLogger
	notifications notificationsRepository
	users         usersRepository
	fcm           fcmService
}

type notificationsRepository interface {
	CreateNotification(ctx context.Context, q database.Queryable, n *model.NotificationCreate) (int64, error)
}

type usersRepository interface {
	GetUsersByIDs(ctx context.Context, q database.Queryable, ids []int64) ([]*model.User, error)
}

type fcmService interface {
	SendMessageBatch(ctx context.Context, ms []*fcm.Message) ([]string, error)
}

// NewSender accepts a nil fcm service, in which case only in-app notifications are stored.
func NewSender(
	db database.PGX,
	logger *zap.SugaredLogger,
	notifications notificationsRepository,
	users usersRepository,
	fcm fcmService,
) *Sender {
	return &Sender{
		db:            db,
		logger:        logger,
		notifications: notifications,
		users:         users,
		fcm:           fcm,
	}
}

// Notify stores every notification. Push delivery failures are logged, not returned.
func (s *Sender) Notify(ctx context.Context, ns ...*model.NotificationCreate) error {
	if len(ns) == 0 {
		return nil
	}

	userIDs := make([]int64, 0, len(ns))
	seen := make(map[int64]struct{}, len(ns))
	for _, n := range ns {
		if _, err := s.notifications.CreateNotification(ctx, s.db, n); err != nil {
			return fmt.Errorf("notifications.CreateNotification: %w", err)
		}

		if _, ok := seen[n.UserID]; !ok {
			seen[n.UserID] = struct{}{}
			userIDs = append(userIDs, n.UserID)
		}
	}

	if s.fcm == nil {
		return nil
	}

	users, err := s.users.GetUsersByIDs(ctx, s.db, userIDs)
	if err != nil {
		s.logger.Errorw("failed to get users for push", "err", err)
		return nil
	}

	usersMap := make(map[int64]*model.User, len(users))
	for _, u := range users {
		usersMap[u.ID] = u
	}

	messages := make([]*fcm.Message, 0, len(ns))
	for _, n := range ns {
		u, ok := usersMap[n.UserID]
		if !ok || !u.Notify || u.PushToken == "" {
			continue
		}
		messages = append(messages, toMessage(u.PushToken, n))
	}

	if len(messages) == 0 {
		return nil
	}

	failed, err := s.fcm.SendMessageBatch(ctx, messages)
	if err != nil {
		s.logger.Errorw("failed to send push notifications", "count", len(messages), "err", err)
	}
	if len(failed) > 0 {
		s.logger.Warnw("push rejected for some tokens", "failed", len(failed), "count", len(messages))
	}

	return nil
}

func toMessage(token string, n *model.NotificationCreate) *fcm.Message {
	data := map[string]string{
		"kind": string(n.Kind),
	}
	if n.EventID != nil {
		data["event_id"] = strconv.FormatInt(*n.EventID, 10)
	}
	if n.ActorID != nil {
		data["actor_id"] = strconv.FormatInt(*n.ActorID, 10)
	}

	return &fcm.Message{
		Token: token,
		Title: title(n.Kind),
		Body:  n.Text,
		Data:  data,
	}
}

func title(kind model.NotificationKind) string {
	switch kind {
	case model.NotificationRSVP:
		return "New RSVP"
	case model.NotificationComment:
		return "New comment"
	case model.NotificationInvite:
		return "You're invited"
	case model.NotificationReminder:
		return "Starting soon"
	case model.NotificationFollow:
		return "New follower"
	default:
		return "StudySpot"
	}
}

package notifications

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/studyspot-backend/internal/database"
	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

type notificationDTO struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Kind      string    `db:"kind"`
	EventID   *int64    `db:"event_id"`
	ActorID   *int64    `db:"actor_id"`
	Text      string    `db:"text"`
	Read      bool      `db:"read"`
	CreatedAt time.Time `db:"created_at"`
}

func (*Repository) CreateNotification(ctx context.Context, q database.Queryable, n *model.NotificationCreate) (int64, error) {
	qb := database.PSQL.
		Insert(database.NotificationsTable).
		Columns("user_id", "kind", "event_id", "actor_id", "text").
		Values(n.UserID, string(n.Kind), n.EventID, n.ActorID, n.Text).
		Suffix("returning id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}

func (*Repository) GetNotifications(ctx context.Context, q database.Queryable, userID int64, limit int) ([]*model.Notification, error) {
	qb := database.PSQL.
		Select("id", "user_id", "kind", "event_id", "actor_id", "text", "read", "created_at").
		From(database.NotificationsTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at desc", "id desc").
		Limit(uint64(limit))

	var dtos []*notificationDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Notification, len(dtos))
	for i, d := range dtos {
		res[i] = &model.Notification{
			ID:        d.ID,
			Read:      d.Read,
			CreatedAt: d.CreatedAt,
			NotificationCreate: model.NotificationCreate{
				UserID:  d.UserID,
				Kind:    model.NotificationKind(d.Kind),
				EventID: d.EventID,
				ActorID: d.ActorID,
				Text:    d.Text,
			},
		}
	}

	return res, nil
}

func (*Repository) MarkRead(ctx context.Context, q database.Queryable, userID, id int64) error {
	qb := database.PSQL.
		Update(database.NotificationsTable).
		Set("read", true).
		Where(sq.Eq{"id": id, "user_id": userID})

	tag, err := q.Exec(ctx, qb)
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}

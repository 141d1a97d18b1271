package attendees

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/studyspot-backend/internal/database"
	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

type rsvpDTO struct {
	EventID int64  `db:"event_id"`
	UserID  int64  `db:"user_id"`
	Status  string `db:"status"`
}

// GetStatus returns model.RSVPNone when the user has no row for the event.
func (*Repository) GetStatus(ctx context.Context, q database.Queryable, eventID, userID int64) (model.RSVPStatus, error) {
	qb := database.PSQL.
		Select("event_id", "user_id", "status").
		From(database.EventAttendeesTable).
		Where(sq.Eq{"event_id": eventID, "user_id": userID})

	var dtos []*rsvpDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return "", fmt.Errorf("SQL request: %w", err)
	}

	if len(dtos) == 0 {
		return model.RSVPNone, nil
	}

	return model.RSVPStatus(dtos[0].Status), nil
}

func (*Repository) CountAccepted(ctx context.Context, q database.Queryable, eventID int64) (int, error) {
	qb := database.PSQL.
		Select("count(*)").
		From(database.EventAttendeesTable).
		Where(sq.Eq{"event_id": eventID, "status": string(model.RSVPAccepted)})

	var count int
	if err := q.Get(ctx, &count, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return count, nil
}

func (*Repository) SetStatus(ctx context.Context, q database.Queryable, eventID, userID int64, status model.RSVPStatus) error {
	qb := database.PSQL.
		Insert(database.EventAttendeesTable).
		Columns("event_id", "user_id", "status").
		Values(eventID, userID, string(status)).
		Suffix("on conflict (event_id, user_id) do update set status = excluded.status")

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

// Invite adds invited rows, leaving users that already answered untouched.
func (*Repository) Invite(ctx context.Context, q database.Queryable, eventID int64, userIDs []int64) error {
	if len(userIDs) == 0 {
		return nil
	}

	qb := database.PSQL.
		Insert(database.EventAttendeesTable).
		Columns("event_id", "user_id", "status").
		Suffix("on conflict (event_id, user_id) do nothing")

	for _, id := range userIDs {
		qb = qb.Values(eventID, id, string(model.RSVPInvited))
	}

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) DeleteStatus(ctx context.Context, q database.Queryable, eventID, userID int64) error {
	qb := database.PSQL.
		Delete(database.EventAttendeesTable).
		Where(sq.Eq{"event_id": eventID, "user_id": userID})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

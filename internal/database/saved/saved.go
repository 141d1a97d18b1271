package saved

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

func (*Repository) IsSaved(ctx context.Context, q database.Queryable, userID, eventID int64) (bool, error) {
	qb := database.PSQL.
		Select().
		Column(sq.Expr("exists(select 1 from "+database.SavedEventsTable+" where user_id = ? and event_id = ?)", userID, eventID))

	var saved bool
	if err := q.Get(ctx, &saved, qb); err != nil {
		return false, fmt.Errorf("SQL request: %w", err)
	}

	return saved, nil
}

// GetSavedEventIDs returns the ids of events saved by the user, most recently saved first.
func (*Repository) GetSavedEventIDs(ctx context.Context, q database.Queryable, userID int64) ([]int64, error) {
	qb := database.PSQL.
		Select("event_id").
		From(database.SavedEventsTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at desc")

	var ids []int64
	if err := q.Select(ctx, &ids, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return ids, nil
}

func (*Repository) Save(ctx context.Context, q database.Queryable, userID, eventID int64) error {
	qb := database.PSQL.
		Insert(database.SavedEventsTable).
		Columns("user_id", "event_id").
		Values(userID, eventID).
		Suffix("on conflict do nothing")

	if _, err := q.Exec(ctx, qb); err != nil {
		if database.IsForeignKeyViolation(err) {
			return model.ErrNoRecord
		}
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) Unsave(ctx context.Context, q database.Queryable, userID, eventID int64) error {
	qb := database.PSQL.
		Delete(database.SavedEventsTable).
		Where(sq.Eq{"user_id": userID, "event_id": eventID})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

package events

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/studyspot-backend/internal/database"
	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

func (*Repository) GetEventByID(ctx context.Context, q database.Queryable, id int64) (*model.Event, error) {
	events, err := getEvents(ctx, q, baseQuery.Where(sq.Eq{"e.id": id}))
	if err != nil {
		return nil, err
	}

	if len(events) == 0 {
		return nil, model.ErrNoRecord
	}

	return events[0], nil
}

// GetEventForUpdate locks the event row for the rest of the transaction.
func (*Repository) GetEventForUpdate(ctx context.Context, q database.Queryable, id int64) error {
	qb := database.PSQL.
		Select("id").
		From(database.EventsTable).
		Where(sq.Eq{"id": id}).
		Suffix("for update")

	var ids []int64
	if err := q.Select(ctx, &ids, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if len(ids) == 0 {
		return model.ErrNoRecord
	}

	return nil
}

func (*Repository) GetEvents(ctx context.Context, q database.Queryable) ([]*model.Event, error) {
	return getEvents(ctx, q, baseQuery.OrderBy("e.starts_at", "e.id"))
}

func (*Repository) GetEventsByIDs(ctx context.Context, q database.Queryable, ids []int64) ([]*model.Event, error) {
	return getEvents(ctx, q, baseQuery.Where(sq.Eq{"e.id": ids}).OrderBy("e.starts_at", "e.id"))
}

// GetEventsStartingBetween returns one-off events starting in [from, to) and every repeating event that started before to.
func (*Repository) GetEventsStartingBetween(ctx context.Context, q database.Queryable, from, to time.Time) ([]*model.Event, error) {
	qb := baseQuery.
		Where(sq.Or{
			sq.And{sq.GtOrEq{"e.starts_at": from}, sq.Lt{"e.starts_at": to}},
			sq.And{sq.NotEq{"e.recurrence_rule": ""}, sq.Lt{"e.starts_at": to}},
		})

	return getEvents(ctx, q, qb)
}

func getEvents(ctx context.Context, q database.Queryable, qb sq.SelectBuilder) ([]*model.Event, error) {
	var dtos []*eventDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToEvents(dtos), nil
}

package events

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/studyspot-backend/internal/database"
	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

func (*Repository) CreateEvent(ctx context.Context, q database.Queryable, event *model.Event) (int64, error) {
	var lat, lng *float64
	if event.Coordinates != nil {
		lat, lng = &event.Coordinates.Lat, &event.Coordinates.Lng
	}

	tags := event.Tags
	if tags == nil {
		tags = []string{}
	}

	qb := database.PSQL.
		Insert(database.EventsTable).
		Columns(
			"creator_id",
			"title",
			"description",
			"location",
			"lat",
			"lng",
			"starts_at",
			"capacity",
			"tags",
			"repeat_type",
			"recurrence_rule",
		).
		Values(
			event.CreatorID,
			event.Title,
			event.Description,
			event.Location,
			lat,
			lng,
			event.StartsAt,
			event.Capacity,
			tags,
			event.RepeatType,
			event.RepeatRule,
		).
		Suffix("returning id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}

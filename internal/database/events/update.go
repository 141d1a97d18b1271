package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/studyspot-backend/internal/database"
	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

func (*Repository) UpdateCoordinates(ctx context.Context, q database.Queryable, id int64, coords *model.Coordinates) error {
	var lat, lng *float64
	if coords != nil {
		lat, lng = &coords.Lat, &coords.Lng
	}

	qb := database.PSQL.
		Update(database.EventsTable).
		SetMap(map[string]interface{}{
			"lat": lat,
			"lng": lng,
		}).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

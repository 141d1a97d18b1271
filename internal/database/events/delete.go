package events

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/studyspot-backend/internal/database"
	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

// DeleteEvent removes the event together with its attendees, saves and
// comments (cascaded by the schema).
func (*Repository) DeleteEvent(ctx context.Context, q database.Queryable, id int64) error {
	tag, err := q.Exec(ctx, database.PSQL.
		Delete(database.EventsTable).
		Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNoRecord
	}

	return nil
}

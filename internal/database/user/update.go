package user

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/studyspot-backend/internal/database"
	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

func (*Repository) UpdateUserPushToken(ctx context.Context, q database.Queryable, id int64, token string) error {
	qb := database.PSQL.
		Update(database.UsersTable).
		Set("push_token", token).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) UpdateUser(ctx context.Context, q database.Queryable, id int64, upd *model.UserUpdate) error {
	set := make(map[string]interface{})
	if upd.FullName != nil {
		set["full_name"] = *upd.FullName
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.Photo != nil {
		set["photo"] = *upd.Photo
	}
	if upd.Notify != nil {
		set["notify"] = *upd.Notify
	}

	if len(set) == 0 {
		return nil
	}

	qb := database.PSQL.
		Update(database.UsersTable).
		SetMap(set).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

package social

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/studyspot-backend/internal/database"
)

// Block records the block and removes follows in both directions.
func (r *Repository) Block(ctx context.Context, q database.Queryable, blockerID, blockedID int64) error {
	qb := database.PSQL.
		Insert(database.BlocksTable).
		Columns("blocker_id", "blocked_id").
		Values(blockerID, blockedID).
		Suffix("on conflict do nothing")

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	del := database.PSQL.
		Delete(database.FollowsTable).
		Where(sq.Or{
			sq.Eq{"follower_id": blockerID, "followee_id": blockedID},
			sq.Eq{"follower_id": blockedID, "followee_id": blockerID},
		})

	if _, err := q.Exec(ctx, del); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) Unblock(ctx context.Context, q database.Queryable, blockerID, blockedID int64) error {
	qb := database.PSQL.
		Delete(database.BlocksTable).
		Where(sq.Eq{"blocker_id": blockerID, "blocked_id": blockedID})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) GetBlockedIDs(ctx context.Context, q database.Queryable, blockerID int64) ([]int64, error) {
	qb := database.PSQL.
		Select("blocked_id").
		From(database.BlocksTable).
		Where(sq.Eq{"blocker_id": blockerID}).
		OrderBy("blocked_id")

	var ids []int64
	if err := q.Select(ctx, &ids, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return ids, nil
}

// IsBlockedEitherWay reports whether a blocks b or b blocks a.
func (*Repository) IsBlockedEitherWay(ctx context.Context, q database.Queryable, a, b int64) (bool, error) {
	qb := database.PSQL.
		Select().
		Column(sq.Expr(
			"exists(select 1 from "+database.BlocksTable+" where (blocker_id = ? and blocked_id = ?) or (blocker_id = ? and blocked_id = ?))",
			a, b, b, a,
		))

	var blocked bool
	if err := q.Get(ctx, &blocked, qb); err != nil {
		return false, fmt.Errorf("SQL request: %w", err)
	}

	return blocked, nil
}

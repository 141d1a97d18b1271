package social

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/studyspot-backend/internal/database"
)

func (*Repository) Follow(ctx context.Context, q database.Queryable, followerID, followeeID int64) error {
	qb := database.PSQL.
		Insert(database.FollowsTable).
		Columns("follower_id", "followee_id").
		Values(followerID, followeeID).
		Suffix("on conflict do nothing")

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) Unfollow(ctx context.Context, q database.Queryable, followerID, followeeID int64) error {
	qb := database.PSQL.
		Delete(database.FollowsTable).
		Where(sq.Eq{"follower_id": followerID, "followee_id": followeeID})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) GetFollowerIDs(ctx context.Context, q database.Queryable, userID int64) ([]int64, error) {
	qb := database.PSQL.
		Select("follower_id").
		From(database.FollowsTable).
		Where(sq.Eq{"followee_id": userID}).
		OrderBy("follower_id")

	var ids []int64
	if err := q.Select(ctx, &ids, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return ids, nil
}

func (*Repository) GetFollowingIDs(ctx context.Context, q database.Queryable, userID int64) ([]int64, error) {
	qb := database.PSQL.
		Select("followee_id").
		From(database.FollowsTable).
		Where(sq.Eq{"follower_id": userID}).
		OrderBy("followee_id")

	var ids []int64
	if err := q.Select(ctx, &ids, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return ids, nil
}

// GetFriendIDs returns users that follow userID and are followed back.
func (*Repository) GetFriendIDs(ctx context.Context, q database.Queryable, userID int64) ([]int64, error) {
	qb := database.PSQL.
		Select("f1.followee_id").
		From(database.FollowsTable + " f1").
		Join(database.FollowsTable + " f2 on f1.followee_id = f2.follower_id and f2.followee_id = f1.follower_id").
		Where(sq.Eq{"f1.follower_id": userID}).
		OrderBy("f1.followee_id")

	var ids []int64
	if err := q.Select(ctx, &ids, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return ids, nil
}

package user

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/studyspot-backend/internal/database"
	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

const searchDocument = "full_name || ' ' || email"

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// SearchUsers matches every word of the query against name and email, closest
// trigram match first. Pages are zero-based.
func (*Repository) SearchUsers(ctx context.Context, q database.Queryable, filter model.UserSearchFilter) ([]*model.User, error) {
	qb := baseQuery.
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Page * filter.Limit))

	words := strings.Fields(filter.Query)
	if len(words) == 0 {
		qb = qb.OrderBy("full_name", "id")
	} else {
		for i, w := range words {
			words[i] = likeEscaper.Replace(w)
		}
		pattern := "%" + strings.Join(words, "%") + "%"

		qb = qb.
			Where(sq.ILike{searchDocument: pattern}).
			OrderByClause(searchDocument+" <-> ?", filter.Query).
			OrderBy("id")
	}

	var dtos []*userDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToUsers(dtos), nil
}

package comments

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/SergeyKozhin/studyspot-backend/internal/database"
	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

type commentDTO struct {
	ID        int64     `db:"id"`
	EventID   int64     `db:"event_id"`
	AuthorID  int64     `db:"author_id"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
}

func (*Repository) CreateComment(ctx context.Context, q database.Queryable, c *model.Comment) (*model.Comment, error) {
	qb := database.PSQL.
		Insert(database.CommentsTable).
		Columns("event_id", "author_id", "body").
		Values(c.EventID, c.AuthorID, c.Body).
		Suffix("returning id, event_id, author_id, body, created_at")

	dto := &commentDTO{}
	if err := q.Get(ctx, dto, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	return mapToComment(dto), nil
}

func (*Repository) GetComments(ctx context.Context, q database.Queryable, eventID int64) ([]*model.Comment, error) {
	qb := database.PSQL.
		Select("id", "event_id", "author_id", "body", "created_at").
		From(database.CommentsTable).
		Where(sq.Eq{"event_id": eventID}).
		OrderBy("created_at", "id")

	var dtos []*commentDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.Comment, len(dtos))
	for i, d := range dtos {
		res[i] = mapToComment(d)
	}

	return res, nil
}

func mapToComment(d *commentDTO) *model.Comment {
	return &model.Comment{
		ID:        d.ID,
		EventID:   d.EventID,
		AuthorID:  d.AuthorID,
		Body:      d.Body,
		CreatedAt: d.CreatedAt,
	}
}

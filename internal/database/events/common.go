package events

import "github.com/SergeyKozhin/studyspot-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select(
		"e.id",
		"e.creator_id",
		"e.title",
		"e.description",
		"e.location",
		"e.lat",
		"e.lng",
		"e.starts_at",
		"e.capacity",
		"e.tags",
		"e.repeat_type",
		"e.recurrence_rule",
		"e.created_at",
		"coalesce(array_agg(a.user_id) filter (where a.status = 'accepted'), '{}') accepted_ids",
		"coalesce(array_agg(a.user_id) filter (where a.status = 'invited'), '{}') invited_ids",
		"coalesce(array_agg(a.user_id) filter (where a.status = 'declined'), '{}') declined_ids",
	).
	From(database.EventsTable + " e").
	LeftJoin(database.EventAttendeesTable + " a on a.event_id = e.id").
	GroupBy("e.id")

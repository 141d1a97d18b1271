package database

import sq "github.com/Masterminds/squirrel"

var PSQL = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	UsersTable          = "users"
	EventsTable         = "events"
	EventAttendeesTable = "event_attendees"
	SavedEventsTable    = "saved_events"
	CommentsTable       = "event_comments"
	FollowsTable        = "follows"
	BlocksTable         = "blocks"
	NotificationsTable  = "notifications"
)

package user

import (
	"github.com/SergeyKozhin/studyspot-backend/internal/database"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select(
		"id",
		"full_name",
		"email",
		"bio",
		"photo",
		"push_token",
		"notify",
	).
	From(database.UsersTable)

package user

import (
	"github.com/SergeyKozhin/studyspot-backend/internal/model"
)

type userDTO struct {
	ID        int64  `db:"id"`
	FullName  string `db:"full_name"`
	Email     string `db:"email"`
	Bio       string `db:"bio"`
	Photo     string `db:"photo"`
	PushToken string `db:"push_token"`
	Notify    bool   `db:"notify"`
}

func mapToUser(dto *userDTO) *model.User {
	return &model.User{
		ID:        dto.ID,
		PushToken: dto.PushToken,
		Notify:    dto.Notify,
		UserCreate: model.UserCreate{
			FullName: dto.FullName,
			Email:    dto.Email,
			Bio:      dto.Bio,
			Photo:    dto.Photo,
		},
	}
}

func mapToUsers(dtos []*userDTO) []*model.User {
	res := make([]*model.User, len(dtos))
	for i, d := range dtos {
		res[i] = mapToUser(d)
	}

	return res
}

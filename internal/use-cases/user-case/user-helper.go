package user_case

import (
	"strings"

	user_dto "github.com/Xenn-00/aufgaben-team/internal/dtos/user-dto"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
)

func userUpdateFrom(req user_dto.UpdateProfileRequest) entity.UserUpdate {
	model := entity.UserUpdate{
		FullName: req.FullName,
		Username: req.Username,
		Bio:      req.Bio,
	}
	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		model.Email = &email
	}
	return model
}

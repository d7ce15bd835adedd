package user_dto

type ParamUserID struct {
	ID string `params:"userId" validate:"required,uuid"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"fullname,omitempty" validate:"omitempty,min=2,max=100"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=30,alphanum"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=500"`
}

func (r UpdateProfileRequest) IsEmpty() bool {
	return r.FullName == nil && r.Username == nil && r.Email == nil && r.Bio == nil
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72,nefield=CurrentPassword"`
}

type UpdateAvatarRequest struct {
	AvatarURL string `json:"avatarUrl" validate:"required,url"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

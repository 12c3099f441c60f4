package dto

import (
	"gooman/internal/domains/user/model"
	"gooman/shared"
	"gooman/shared/constant"
	gDto "gooman/shared/dto"
	gModel "gooman/shared/model"
	"gooman/shared/timezone"

	"github.com/google/uuid"
)

// NewUser builds an active user row with the default role.
func NewUser(email, hashedPassword string) model.User {
	now := timezone.Now()

	return model.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: hashedPassword,
		Role:     constant.RoleUser,
		IsActive: true,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	IsActive  bool    `json:"is_active"`
	LastLogin *string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Role = model.Role
	r.IsActive = model.IsActive

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(model.Metadata)
}

// UpdateUserRequest is the admin view of a user account.
type UpdateUserRequest struct {
	Role     string `db:"role"      json:"role,omitempty"      validate:"omitempty,oneof=admin user"`
	IsActive *bool  `db:"is_active" json:"is_active,omitempty"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
